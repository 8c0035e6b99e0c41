package wait

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
)

// Defaults for Options
const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 200 * time.Millisecond
	// DefaultSettleDelay is the pause after a Disappear condition holds,
	// absorbing the trailing animation of the element that went away
	DefaultSettleDelay = 5 * time.Second
)

// State is the visibility a condition waits for
type State int

// Visibility states
const (
	Appear State = iota
	Disappear
)

func (s State) String() string {
	if s == Disappear {
		return "disappear"
	}
	return "appear"
}

// Condition is a single polling contract. A zero Timeout means the engine default.
type Condition struct {
	State   State
	Timeout time.Duration
}

// AppearWithin waits for a target to become visible
func AppearWithin(timeout time.Duration) Condition {
	return Condition{State: Appear, Timeout: timeout}
}

// DisappearWithin waits for a target to become invisible or detached
func DisappearWithin(timeout time.Duration) Condition {
	return Condition{State: Disappear, Timeout: timeout}
}

// Options tunes an Engine
type Options struct {
	Timeout      time.Duration
	PollInterval time.Duration
	SettleDelay  time.Duration
}

// DefaultOptions returns the stock 10s timeout, 200ms polling and 5s settle delay
func DefaultOptions() Options {
	return Options{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		SettleDelay:  DefaultSettleDelay,
	}
}

// Target is something whose visibility can be sampled
type Target interface {
	// Visible samples the target once
	Visible(ctx context.Context) (bool, error)
	// String describes the target in errors and logs
	String() string
}

type located struct {
	finder session.Finder
	loc    locator.Locator
}

// Located targets the elements matching loc, re-resolved on every poll.
// Appear looks at the first match; Disappear at all of them.
func Located(finder session.Finder, loc locator.Locator) Target {
	return located{finder: finder, loc: loc}
}

func (l located) Visible(ctx context.Context) (bool, error) {
	el, ok, err := session.First(ctx, l.finder, l.loc)
	if err != nil || !ok {
		return false, err
	}
	return el.IsVisible(ctx)
}

// AnyVisible reports whether any element matching loc is visible
func (l located) AnyVisible(ctx context.Context) (bool, error) {
	els, err := l.finder.FindAll(ctx, l.loc)
	if err != nil {
		return false, err
	}
	for _, el := range els {
		visible, err := el.IsVisible(ctx)
		if err != nil {
			return false, err
		}
		if visible {
			return true, nil
		}
	}
	return false, nil
}

func (l located) String() string {
	return l.loc.String()
}

type handle struct {
	el   session.Element
	desc string
}

// Handle targets an element handle that was already resolved
func Handle(el session.Element, description string) Target {
	return handle{el: el, desc: description}
}

func (h handle) Visible(ctx context.Context) (bool, error) {
	return h.el.IsVisible(ctx)
}

func (h handle) String() string {
	return h.desc
}

// Engine polls targets until a visibility condition holds.
// An Engine is stateless after construction and may be shared.
type Engine struct {
	opts   Options
	logger logrus.FieldLogger
}

// New creates an engine; zero option fields fall back to the defaults.
// A negative SettleDelay disables settling.
func New(opts Options, logger logrus.FieldLogger) *Engine {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = def.SettleDelay
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Engine{opts: opts, logger: logger}
}

// Options returns the resolved options
func (e *Engine) Options() Options {
	return e.opts
}

// Until blocks until cond holds for target, the timeout elapses or ctx is done.
// It returns the time spent polling, excluding any settle delay.
func (e *Engine) Until(ctx context.Context, target Target, cond Condition) (time.Duration, error) {
	timeout := cond.Timeout
	if timeout <= 0 {
		timeout = e.opts.Timeout
	}

	start := time.Now()
	deadline := start.Add(timeout)
	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		held, err := e.holds(ctx, target, cond.State)
		if err != nil {
			lastErr = err
		}
		if held {
			break
		}

		now := time.Now()
		if !now.Before(deadline) {
			elapsed := now.Sub(start)
			e.logger.WithFields(logrus.Fields{
				"target":  target.String(),
				"state":   cond.State.String(),
				"elapsed": elapsed,
			}).Debug("wait timed out")
			return elapsed, &TimeoutError{
				Target:  target.String(),
				State:   cond.State,
				Timeout: timeout,
				Elapsed: elapsed,
				LastErr: lastErr,
			}
		}

		select {
		case <-ctx.Done():
			return time.Since(start), ctx.Err()
		case <-ticker.C:
		}
	}

	elapsed := time.Since(start)
	e.logger.WithFields(logrus.Fields{
		"target":  target.String(),
		"state":   cond.State.String(),
		"elapsed": elapsed,
	}).Debug("wait condition held")

	if cond.State == Disappear && e.opts.SettleDelay > 0 {
		if err := sleep(ctx, e.opts.SettleDelay); err != nil {
			return elapsed, err
		}
	}
	return elapsed, nil
}

// Appear waits with the default timeout for loc to become visible
func (e *Engine) Appear(ctx context.Context, finder session.Finder, loc locator.Locator) error {
	_, err := e.Until(ctx, Located(finder, loc), Condition{State: Appear})
	return err
}

// Disappear waits with the default timeout for loc to go away, then settles
func (e *Engine) Disappear(ctx context.Context, finder session.Finder, loc locator.Locator) error {
	_, err := e.Until(ctx, Located(finder, loc), Condition{State: Disappear})
	return err
}

// anyTarget is implemented by targets that can match several elements.
// Disappear holds only once none of them is visible.
type anyTarget interface {
	AnyVisible(ctx context.Context) (bool, error)
}

func (e *Engine) holds(ctx context.Context, target Target, state State) (bool, error) {
	if state == Disappear {
		sample := target.Visible
		if t, ok := target.(anyTarget); ok {
			sample = t.AnyVisible
		}
		visible, err := sample(ctx)
		if err != nil {
			return false, err
		}
		return !visible, nil
	}
	return target.Visible(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
