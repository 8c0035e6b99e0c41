package scenario

import (
	"errors"
	"fmt"

	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/wait"
)

// Kind classifies why an attempt failed
type Kind string

// Failure kinds
const (
	KindNone       Kind = ""
	KindTimeout    Kind = "timeout"
	KindNotFound   Kind = "not_found"
	KindStaleState Kind = "stale_state"
	KindAssertion  Kind = "assertion"
	KindError      Kind = "error"
)

// KindOf classifies err; nil is KindNone
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, wait.ErrTimeout):
		return KindTimeout
	case errors.Is(err, pages.ErrNotFound):
		return KindNotFound
	case errors.Is(err, pages.ErrStaleState):
		return KindStaleState
	case errors.Is(err, ErrAssertion):
		return KindAssertion
	default:
		return KindError
	}
}

// Implicated names the locator, entity or screen an error points at, or ""
func Implicated(err error) string {
	var timeout *wait.TimeoutError
	if errors.As(err, &timeout) {
		return timeout.Target
	}
	var notFound *pages.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("%s %q", notFound.Entity, notFound.Name)
	}
	var stale *pages.StaleStateError
	if errors.As(err, &stale) {
		return string(stale.Screen)
	}
	return ""
}
