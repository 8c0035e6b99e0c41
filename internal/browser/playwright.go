package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
)

// PlaywrightLauncher owns one playwright driver and browser process.
// Every session gets its own browser context, so cookies never leak between scenarios.
type PlaywrightLauncher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  logrus.FieldLogger
}

// NewPlaywrightLauncher starts playwright and launches the configured engine.
// Browsers must already be installed with the playwright CLI.
func NewPlaywrightLauncher(cfg Config, logger logrus.FieldLogger) (*PlaywrightLauncher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	var b playwright.Browser
	switch cfg.Engine {
	case EngineFirefox:
		b, err = pw.Firefox.Launch(opts)
	case EngineEdge:
		opts.Channel = playwright.String("msedge")
		b, err = pw.Chromium.Launch(opts)
	default:
		b, err = pw.Chromium.Launch(opts)
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Engine, err)
	}

	return &PlaywrightLauncher{pw: pw, browser: b, logger: logger}, nil
}

// NewSession opens a fresh browser context with one page
func (l *PlaywrightLauncher) NewSession(ctx context.Context) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bctx, err := l.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightSession{bctx: bctx, page: page}, nil
}

// Close shuts the browser and the playwright driver down
func (l *PlaywrightLauncher) Close() error {
	if err := l.browser.Close(); err != nil {
		l.logger.WithError(err).Warn("failed to close browser")
	}
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

type playwrightSession struct {
	bctx playwright.BrowserContext
	page playwright.Page
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.URL(), nil
}

func (s *playwrightSession) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

func (s *playwrightSession) Close() error {
	return s.bctx.Close()
}

func (s *playwrightSession) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	return findPlaywright(ctx, s.page.Locator(selector(loc)))
}

func findPlaywright(ctx context.Context, l playwright.Locator) ([]session.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := l.All()
	if err != nil {
		return nil, err
	}
	elements := make([]session.Element, 0, len(matches))
	for _, m := range matches {
		elements = append(elements, &playwrightElement{loc: m})
	}
	return elements, nil
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	return findPlaywright(ctx, e.loc.Locator(selector(loc)))
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click()
}

func (e *playwrightElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.PressSequentially(text)
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.InnerText()
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsVisible()
}
