// Package pages models the storefront screens as page objects.
//
// Every screen is its own Go type and every transition returns the next
// screen's type, so navigation state is explicit in the caller's code. A
// Flow tracks which screen is active; operations on any other page object
// fail with *StaleStateError.
package pages

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
	"github.com/storefront-qa/pageflow/internal/wait"
)

// Screen names a logical screen
type Screen string

// Screens of the storefront and the retail site
const (
	ScreenNone         Screen = "none"
	ScreenLanding      Screen = "landing"
	ScreenCatalogue    Screen = "catalogue"
	ScreenCart         Screen = "cart"
	ScreenCheckout     Screen = "checkout"
	ScreenConfirmation Screen = "confirmation"
	ScreenOrders       Screen = "orders"
	ScreenRetailHeader Screen = "retail-header"
)

// DefaultSuggestionIndex picks the second country suggestion. The choice is
// positional, so a change in suggestion ordering changes the country.
const DefaultSuggestionIndex = 1

// Page is implemented by every page object
type Page interface {
	Screen() Screen
}

// Options tunes page object behaviour
type Options struct {
	// SuggestionIndex is the zero-based index of the country suggestion to click
	SuggestionIndex int
}

// DefaultOptions returns the stock options
func DefaultOptions() Options {
	return Options{SuggestionIndex: DefaultSuggestionIndex}
}

// Flow is the navigation state of one scenario. It is not safe for
// concurrent use: page object calls within a scenario are sequential.
type Flow struct {
	sess    session.Session
	waiter  *wait.Engine
	loc     Locators
	opts    Options
	logger  logrus.FieldLogger
	seq     uint64
	active  uint64
	pending uint64

	current     Page
	pendingPage Page
	visited     []Screen
}

// NewFlow binds a session and wait engine to a set of locators
func NewFlow(sess session.Session, waiter *wait.Engine, loc Locators, opts Options, logger logrus.FieldLogger) *Flow {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if opts.SuggestionIndex < 0 {
		opts.SuggestionIndex = DefaultSuggestionIndex
	}
	return &Flow{
		sess:   sess,
		waiter: waiter,
		loc:    loc,
		opts:   opts,
		logger: logger,
	}
}

// Session returns the session the flow drives
func (f *Flow) Session() session.Session {
	return f.sess
}

// Current returns the active page object, or nil before the first navigation
func (f *Flow) Current() Page {
	return f.current
}

// Visited returns the screens activated so far, in order
func (f *Flow) Visited() []Screen {
	return append([]Screen(nil), f.visited...)
}

// OpenLanding navigates to the storefront login screen
func (f *Flow) OpenLanding(ctx context.Context, url string) (*Landing, error) {
	if err := f.sess.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to open landing page %s: %w", url, err)
	}
	l := &Landing{page: f.newPage(ScreenLanding)}
	f.enter(l, l.token)
	return l, nil
}

// OpenRetailHeader navigates to the retail site
func (f *Flow) OpenRetailHeader(ctx context.Context, url string) (*RetailHeader, error) {
	if err := f.sess.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to open retail site %s: %w", url, err)
	}
	r := &RetailHeader{page: f.newPage(ScreenRetailHeader)}
	f.enter(r, r.token)
	return r, nil
}

func (f *Flow) newPage(screen Screen) *page {
	f.seq++
	return &page{flow: f, token: f.seq, screen: screen}
}

// enter makes p the active page, retiring the previous one
func (f *Flow) enter(p Page, token uint64) {
	f.logger.WithFields(logrus.Fields{
		"from": f.activeScreen(),
		"to":   p.Screen(),
	}).Debug("screen transition")
	f.active = token
	f.current = p
	f.pending = 0
	f.pendingPage = nil
	f.visited = append(f.visited, p.Screen())
}

// offer registers p as the likely next page without retiring the active one.
// The first operation on p activates it.
func (f *Flow) offer(p Page, token uint64) {
	f.pending = token
	f.pendingPage = p
}

func (f *Flow) acquire(pg *page) error {
	switch pg.token {
	case f.active:
		return nil
	case f.pending:
		f.enter(f.pendingPage, f.pending)
		return nil
	default:
		return &StaleStateError{Screen: pg.screen, Active: f.activeScreen()}
	}
}

func (f *Flow) activeScreen() Screen {
	if f.current == nil {
		return ScreenNone
	}
	return f.current.Screen()
}

// page is the state shared by every page object
type page struct {
	flow   *Flow
	token  uint64
	screen Screen
}

// Screen returns the screen this page object models
func (p *page) Screen() Screen {
	return p.screen
}

func (p *page) check() error {
	return p.flow.acquire(p)
}

func (p *page) find(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	elements, err := p.flow.sess.FindAll(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", loc, err)
	}
	return elements, nil
}

// visible waits for loc to appear and returns the first match
func (p *page) visible(ctx context.Context, loc locator.Locator) (session.Element, error) {
	if err := p.flow.waiter.Appear(ctx, p.flow.sess, loc); err != nil {
		return nil, err
	}
	el, ok, err := session.First(ctx, p.flow.sess, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", loc, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s vanished after becoming visible", loc)
	}
	return el, nil
}

func (p *page) click(ctx context.Context, loc locator.Locator) error {
	el, err := p.visible(ctx, loc)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", loc, err)
	}
	return nil
}

// texts samples the text of every element matching loc once loc has appeared.
// A loc that never appears yields no texts.
func (p *page) texts(ctx context.Context, loc locator.Locator) ([]string, error) {
	if err := p.flow.waiter.Appear(ctx, p.flow.sess, loc); err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			return nil, nil
		}
		return nil, err
	}
	elements, err := p.find(ctx, loc)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read text of %s: %w", loc, err)
		}
		out = append(out, text)
	}
	return out, nil
}
