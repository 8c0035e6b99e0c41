package pages

import (
	"errors"
	"fmt"
)

// Sentinels matched through errors.Is by the typed errors below
var (
	ErrNotFound   = errors.New("entity not found")
	ErrStaleState = errors.New("page object is stale")
)

// NotFoundError reports a named entity missing from a listing
type NotFoundError struct {
	Entity string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StaleStateError reports an operation on a page whose screen is no longer active
type StaleStateError struct {
	Screen Screen
	Active Screen
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s page is stale: active screen is %s", e.Screen, e.Active)
}

// Is makes errors.Is(err, ErrStaleState) hold
func (e *StaleStateError) Is(target error) bool {
	return target == ErrStaleState
}
