package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AttemptStatus represents valid attempt states
type AttemptStatus string

// Attempt statuses
const (
	AttemptStatusRunning AttemptStatus = "running"
	AttemptStatusPassed  AttemptStatus = "passed"
	AttemptStatusFailed  AttemptStatus = "failed"
)

// Attempt is one persisted execution of a scenario
type Attempt struct {
	ID         string
	RunID      string
	Scenario   string
	Number     int
	Status     AttemptStatus
	Kind       string
	Implicated string
	Screen     string
	Screenshot string
	ErrorText  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Domain errors
var (
	ErrInvalidRunID              = errors.New("run id must be a uuid")
	ErrInvalidScenarioName       = errors.New("scenario name cannot be empty")
	ErrInvalidAttemptNumber      = errors.New("attempt number must be positive")
	ErrInvalidAttemptTransition  = errors.New("invalid attempt status transition")
	ErrAttemptFailureUnexplained = errors.New("failed attempt needs an error text")
)

// NewAttempt starts a running attempt. An empty id is replaced by a fresh uuid.
func NewAttempt(id, runID, scenario string, number int) (*Attempt, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRunID, runID)
	}
	if scenario == "" {
		return nil, ErrInvalidScenarioName
	}
	if number <= 0 {
		return nil, ErrInvalidAttemptNumber
	}
	if id == "" {
		id = uuid.New().String()
	}

	return &Attempt{
		ID:        id,
		RunID:     runID,
		Scenario:  scenario,
		Number:    number,
		Status:    AttemptStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Pass finishes a running attempt successfully
func (a *Attempt) Pass() error {
	if a.Status != AttemptStatusRunning {
		return fmt.Errorf("%w: cannot pass attempt with status %s", ErrInvalidAttemptTransition, a.Status)
	}
	a.Status = AttemptStatusPassed
	a.FinishedAt = time.Now()
	return nil
}

// Fail finishes a running attempt with the failure details
func (a *Attempt) Fail(kind, implicated, screen, screenshot, errText string) error {
	if a.Status != AttemptStatusRunning {
		return fmt.Errorf("%w: cannot fail attempt with status %s", ErrInvalidAttemptTransition, a.Status)
	}
	if errText == "" {
		return ErrAttemptFailureUnexplained
	}
	a.Status = AttemptStatusFailed
	a.Kind = kind
	a.Implicated = implicated
	a.Screen = screen
	a.Screenshot = screenshot
	a.ErrorText = errText
	a.FinishedAt = time.Now()
	return nil
}

// IsFinished returns true once the attempt passed or failed
func (a *Attempt) IsFinished() bool {
	return a.Status == AttemptStatusPassed || a.Status == AttemptStatusFailed
}

// Duration returns how long the attempt ran, zero while running
func (a *Attempt) Duration() time.Duration {
	if !a.IsFinished() {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}
