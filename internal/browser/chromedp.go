package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
)

// isVisibleJS mirrors the rendered-and-displayed check of WebDriver
const isVisibleJS = `function() {
	const style = window.getComputedStyle(this);
	if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') {
		return false;
	}
	const rect = this.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
}`

// ChromedpLauncher owns one Chrome process; each session is a new tab
type ChromedpLauncher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   logrus.FieldLogger
}

// NewChromedpLauncher prepares the Chrome allocator. Chrome itself starts
// with the first session.
func NewChromedpLauncher(cfg Config, logger logrus.FieldLogger) (*ChromedpLauncher, error) {
	if cfg.Engine != EngineChrome {
		return nil, fmt.Errorf("%w: chromedp drives chrome only, not %s", ErrUnsupported, cfg.Engine)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromedpLauncher{allocCtx: allocCtx, cancel: cancel, logger: logger}, nil
}

// NewSession opens a tab
func (l *ChromedpLauncher) NewSession(ctx context.Context) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(l.allocCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open chrome tab: %w", err)
	}
	return &chromedpSession{ctx: tabCtx, cancel: cancel}, nil
}

// Close kills the Chrome process
func (l *ChromedpLauncher) Close() error {
	l.cancel()
	return nil
}

type chromedpSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions on the tab, aborting them when the caller's ctx ends
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *chromedpSession) URL(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

func (s *chromedpSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	return err
}

func (s *chromedpSession) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	opt := chromedp.ByQueryAll
	if loc.Kind() == locator.XPathKind {
		opt = chromedp.BySearch
	}
	return s.nodes(ctx, loc.Expr(), opt)
}

func (s *chromedpSession) nodes(ctx context.Context, expr string, opts ...chromedp.QueryOption) ([]session.Element, error) {
	var nodes []*cdp.Node
	opts = append(opts, chromedp.AtLeast(0))
	if err := s.run(ctx, chromedp.Nodes(expr, &nodes, opts...)); err != nil {
		return nil, err
	}
	elements := make([]session.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromedpElement{s: s, node: n})
	}
	return elements, nil
}

type chromedpElement struct {
	s    *chromedpSession
	node *cdp.Node
}

// FindAll supports CSS only: DevTools searches by XPath across the whole document
func (e *chromedpElement) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	if loc.Kind() == locator.XPathKind {
		return nil, fmt.Errorf("%w: scoped xpath lookup %s", ErrUnsupported, loc)
	}
	return e.s.nodes(ctx, loc.Expr(), chromedp.ByQueryAll, chromedp.FromNode(e.node))
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.s.run(ctx, chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) Type(ctx context.Context, text string) error {
	return e.s.run(ctx, chromedp.SendKeys([]cdp.NodeID{e.node.NodeID}, text, chromedp.ByNodeID))
}

// Text reads the rendered text; NodeReady accepts hidden nodes
func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.s.run(ctx, chromedp.Text([]cdp.NodeID{e.node.NodeID}, &text, chromedp.ByNodeID, chromedp.NodeReady)); err != nil {
		return "", err
	}
	return text, nil
}

func (e *chromedpElement) IsVisible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		res, exc, err := runtime.CallFunctionOn(isVisibleJS).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		visible = string(res.Value) == "true"
		return nil
	}))
	return visible, err
}
