// Package scenario runs end-to-end journeys against fresh browser sessions,
// retrying failed attempts and reporting every attempt to listeners.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/session"
	"github.com/storefront-qa/pageflow/internal/wait"
)

// Func is one journey. It drives sc.Flow and returns the first failed check.
type Func func(ctx context.Context, sc *Context) error

// Scenario names a journey
type Scenario struct {
	Name string
	Run  Func
}

// Attempt records one execution of a scenario
type Attempt struct {
	ID         uuid.UUID
	Number     int
	StartedAt  time.Time
	Duration   time.Duration
	Err        error
	Kind       Kind
	Implicated string
	Screen     pages.Screen
	Screenshot string
}

// Passed reports whether the attempt succeeded
func (a Attempt) Passed() bool {
	return a.Err == nil
}

// Result is the outcome of a scenario over all its attempts
type Result struct {
	RunID    uuid.UUID
	Name     string
	Attempts []Attempt
	Err      error
}

// Passed reports whether the last attempt succeeded
func (r *Result) Passed() bool {
	return r.Err == nil
}

// Failures returns the failed attempts
func (r *Result) Failures() []Attempt {
	var out []Attempt
	for _, a := range r.Attempts {
		if !a.Passed() {
			out = append(out, a)
		}
	}
	return out
}

// Summary aggregates the results of RunAll
type Summary struct {
	RunID   uuid.UUID
	Results []*Result
}

// Passed counts scenarios that passed, possibly after retries
func (s *Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed() {
			n++
		}
	}
	return n
}

// Failed counts scenarios that failed every attempt
func (s *Summary) Failed() int {
	return len(s.Results) - s.Passed()
}

// Options configures the runner
type Options struct {
	Retry    RetryPolicy
	Wait     wait.Options
	Pages    pages.Options
	Locators pages.Locators
}

// DefaultOptions returns the stock retry, wait and page settings
func DefaultOptions() Options {
	return Options{
		Retry:    DefaultRetryPolicy(),
		Wait:     wait.DefaultOptions(),
		Pages:    pages.DefaultOptions(),
		Locators: pages.DefaultLocators(),
	}
}

// Runner executes scenarios. Each attempt gets its own session from the factory.
type Runner struct {
	factory   session.Factory
	opts      Options
	logger    logrus.FieldLogger
	listeners []Listener
	runID     uuid.UUID
}

// NewRunner creates a runner; listeners are notified in the given order
func NewRunner(factory session.Factory, opts Options, logger logrus.FieldLogger, listeners ...Listener) *Runner {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if opts.Locators.Landing.Email.IsZero() {
		opts.Locators = pages.DefaultLocators()
	}
	return &Runner{
		factory:   factory,
		opts:      opts,
		logger:    logger,
		listeners: listeners,
		runID:     uuid.New(),
	}
}

// RunID identifies every scenario executed by this runner
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// RunAll executes scenarios sequentially and stops early only when ctx ends
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) *Summary {
	summary := &Summary{RunID: r.runID}
	for _, s := range scenarios {
		if ctx.Err() != nil {
			break
		}
		summary.Results = append(summary.Results, r.Run(ctx, s.Name, s.Run))
	}
	r.logger.WithFields(logrus.Fields{
		"run_id": r.runID,
		"passed": summary.Passed(),
		"failed": summary.Failed(),
	}).Info("run finished")
	return summary
}

// Run executes fn, re-running it on failure as the retry policy allows
func (r *Runner) Run(ctx context.Context, name string, fn Func) *Result {
	res := &Result{RunID: r.runID, Name: name}

	operation := func() error {
		attempt := r.attempt(ctx, name, len(res.Attempts)+1, fn)
		res.Attempts = append(res.Attempts, attempt)
		if attempt.Err != nil && ctx.Err() != nil {
			return backoff.Permanent(attempt.Err)
		}
		return attempt.Err
	}
	notify := func(err error, next time.Duration) {
		r.logger.WithFields(logrus.Fields{
			"scenario": name,
			"attempt":  len(res.Attempts),
			"retry_in": next,
		}).WithError(err).Warn("scenario failed, retrying")
	}

	res.Err = backoff.RetryNotify(operation, r.opts.Retry.backOff(ctx), notify)

	for _, l := range r.listeners {
		l.OnFinish(ctx, res)
	}
	return res
}

func (r *Runner) attempt(ctx context.Context, name string, number int, fn Func) Attempt {
	sc := &Context{
		RunID:     r.runID,
		ID:        uuid.New(),
		Name:      name,
		Attempt:   number,
		StartedAt: time.Now(),
	}
	sc.Log = r.logger.WithFields(logrus.Fields{
		"run_id":   r.runID,
		"scenario": name,
		"attempt":  number,
	})

	for _, l := range r.listeners {
		l.OnStart(ctx, sc)
	}

	err := r.execute(ctx, sc, fn)
	if err == nil {
		for _, l := range r.listeners {
			l.OnSuccess(ctx, sc)
		}
	} else {
		for _, l := range r.listeners {
			l.OnFailure(ctx, sc, err)
		}
	}

	if sess := sc.Session(); sess != nil {
		if cerr := sess.Close(); cerr != nil {
			sc.Log.WithError(cerr).Warn("failed to close session")
		}
	}

	return Attempt{
		ID:         sc.ID,
		Number:     number,
		StartedAt:  sc.StartedAt,
		Duration:   time.Since(sc.StartedAt),
		Err:        err,
		Kind:       KindOf(err),
		Implicated: Implicated(err),
		Screen:     sc.LastScreen(),
		Screenshot: sc.Screenshot,
	}
}

// execute opens the session, binds the flow and calls fn, turning a panic into an error
func (r *Runner) execute(ctx context.Context, sc *Context, fn Func) (err error) {
	sess, err := r.factory.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	sc.sess = sess
	waiter := wait.New(r.opts.Wait, sc.Log)
	sc.Flow = pages.NewFlow(sess, waiter, r.opts.Locators, r.opts.Pages, sc.Log)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario panicked: %v", p)
		}
	}()
	if err := fn(ctx, sc); err != nil {
		return err
	}
	return nil
}

// ErrAssertion marks a scenario check that observed the wrong state
var ErrAssertion = errors.New("assertion failed")

// Failf returns an ErrAssertion with a formatted message
func Failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
