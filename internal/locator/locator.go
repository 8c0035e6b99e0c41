package locator

import (
	"fmt"
	"strings"
)

// Kind identifies how a locator expression is interpreted
type Kind int

// Locator kinds
const (
	// CSSKind selects elements by CSS (attribute, id, class) selectors
	CSSKind Kind = iota + 1
	// XPathKind selects elements by structural path
	XPathKind
)

// String returns the prefix used when describing a locator of this kind
func (k Kind) String() string {
	switch k {
	case CSSKind:
		return "css"
	case XPathKind:
		return "xpath"
	default:
		return "invalid"
	}
}

// Locator describes how to find one or more elements on the current page.
// Locators are immutable values; the zero value matches nothing.
type Locator struct {
	kind Kind
	expr string
}

// CSS creates a locator from a CSS selector
func CSS(selector string) Locator {
	return Locator{kind: CSSKind, expr: selector}
}

// XPath creates a locator from an XPath expression
func XPath(expr string) Locator {
	return Locator{kind: XPathKind, expr: expr}
}

// ID creates a CSS locator matching the element with the given id
func ID(id string) Locator {
	return CSS("#" + id)
}

// Attr creates a CSS locator matching elements whose attribute equals value
func Attr(name, value string) Locator {
	return CSS(fmt.Sprintf("[%s='%s']", name, escapeQuotes(value)))
}

// AttrContains creates a CSS locator matching elements whose attribute contains value
func AttrContains(name, value string) Locator {
	return CSS(fmt.Sprintf("[%s*='%s']", name, escapeQuotes(value)))
}

// ButtonText creates an XPath locator matching buttons whose text contains text
func ButtonText(text string) Locator {
	return XPath(fmt.Sprintf("//button[contains(text(),'%s')]", escapeQuotes(text)))
}

// Kind returns the locator kind
func (l Locator) Kind() Kind {
	return l.kind
}

// Expr returns the raw selector expression
func (l Locator) Expr() string {
	return l.expr
}

// IsZero reports whether the locator was never constructed
func (l Locator) IsZero() bool {
	return l.kind == 0 || l.expr == ""
}

// String returns a human readable description such as css=#login
func (l Locator) String() string {
	if l.IsZero() {
		return "<empty locator>"
	}
	return l.kind.String() + "=" + l.expr
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
