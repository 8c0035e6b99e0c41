// Package browser launches real browsers behind session.Factory.
//
// Two drivers are available: playwright-go, which drives Chromium, Edge and
// Firefox, and chromedp, which drives Chrome over the DevTools protocol.
package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
)

// ErrUnsupported is returned for driver and engine combinations that cannot be launched
var ErrUnsupported = errors.New("unsupported browser configuration")

// Driver selects the automation library
type Driver string

// Drivers
const (
	DriverPlaywright Driver = "playwright"
	DriverChromedp   Driver = "chromedp"
)

// Engine selects the browser
type Engine string

// Engines
const (
	EngineChrome  Engine = "chrome"
	EngineEdge    Engine = "edge"
	EngineFirefox Engine = "firefox"
)

// ParseDriver parses a driver name, case-insensitively
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case DriverPlaywright, DriverChromedp:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown driver %q", ErrUnsupported, s)
	}
}

// ParseEngine parses a browser name, case-insensitively. "chromium" is an alias for chrome.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case EngineChrome, EngineEdge, EngineFirefox:
		return e, nil
	case "chromium":
		return EngineChrome, nil
	default:
		return "", fmt.Errorf("%w: unknown browser %q", ErrUnsupported, s)
	}
}

// Config is resolved once when a launcher is created
type Config struct {
	Driver   Driver
	Engine   Engine
	Headless bool
}

// Validate checks that the driver can launch the engine
func (c Config) Validate() error {
	if _, err := ParseDriver(string(c.Driver)); err != nil {
		return err
	}
	if _, err := ParseEngine(string(c.Engine)); err != nil {
		return err
	}
	if c.Driver == DriverChromedp && c.Engine != EngineChrome {
		return fmt.Errorf("%w: chromedp drives chrome only, not %s", ErrUnsupported, c.Engine)
	}
	return nil
}

// Launcher opens sessions on one running browser
type Launcher interface {
	session.Factory
	Close() error
}

// Launch starts the browser described by cfg
func Launch(cfg Config, logger logrus.FieldLogger) (Launcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"driver":   cfg.Driver,
		"browser":  cfg.Engine,
		"headless": cfg.Headless,
	}).Info("launching browser")

	switch cfg.Driver {
	case DriverChromedp:
		return NewChromedpLauncher(cfg, logger)
	default:
		return NewPlaywrightLauncher(cfg, logger)
	}
}

// selector renders a locator in playwright's engine-prefixed selector syntax
func selector(loc locator.Locator) string {
	switch loc.Kind() {
	case locator.XPathKind:
		return "xpath=" + loc.Expr()
	default:
		return "css=" + loc.Expr()
	}
}
