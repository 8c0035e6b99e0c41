package session

import (
	"context"
	"errors"

	"github.com/storefront-qa/pageflow/internal/locator"
)

// ErrClosed is returned by operations on a session that has been closed
var ErrClosed = errors.New("session is closed")

// Finder resolves locators to live element handles
type Finder interface {
	// FindAll returns every element currently matching loc, in document order.
	// An empty slice is not an error.
	FindAll(ctx context.Context, loc locator.Locator) ([]Element, error)
}

// Element is a live handle to one element of the current document
type Element interface {
	Finder

	// Click clicks the element
	Click(ctx context.Context) error

	// Type sends text to the element key by key
	Type(ctx context.Context, text string) error

	// Text returns the rendered text of the element
	Text(ctx context.Context) (string, error)

	// IsVisible reports whether the element is rendered and displayed
	IsVisible(ctx context.Context) (bool, error)
}

// Session is one browser tab owned by exactly one scenario
type Session interface {
	Finder

	// Navigate loads url in the tab
	Navigate(ctx context.Context, url string) error

	// URL returns the address of the current document
	URL(ctx context.Context) (string, error)

	// Screenshot captures the current viewport as PNG bytes
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the tab and any browser resources owned by it
	Close() error
}

// Factory opens a fresh session; each scenario attempt gets its own
type Factory interface {
	NewSession(ctx context.Context) (Session, error)
}

// FactoryFunc adapts a function to Factory
type FactoryFunc func(ctx context.Context) (Session, error)

// NewSession calls f(ctx)
func (f FactoryFunc) NewSession(ctx context.Context) (Session, error) {
	return f(ctx)
}

// First returns the first element matching loc, or false when nothing matches
func First(ctx context.Context, f Finder, loc locator.Locator) (Element, bool, error) {
	elements, err := f.FindAll(ctx, loc)
	if err != nil {
		return nil, false, err
	}
	if len(elements) == 0 {
		return nil, false, nil
	}
	return elements[0], true, nil
}
