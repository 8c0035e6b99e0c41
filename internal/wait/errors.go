package wait

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout matches every *TimeoutError through errors.Is
var ErrTimeout = errors.New("wait timed out")

// TimeoutError reports a visibility condition that never held within its budget
type TimeoutError struct {
	Target  string
	State   State
	Timeout time.Duration
	Elapsed time.Duration
	// LastErr is the most recent session error seen while polling, if any
	LastErr error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s to %s (timeout %s)",
		e.Elapsed.Round(time.Millisecond), e.Target, e.State, e.Timeout)
	if e.LastErr != nil {
		msg += fmt.Sprintf(": last error: %v", e.LastErr)
	}
	return msg
}

// Is makes errors.Is(err, ErrTimeout) hold for any TimeoutError
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Unwrap exposes the last polling error
func (e *TimeoutError) Unwrap() error {
	return e.LastErr
}
