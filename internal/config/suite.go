package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/storefront-qa/pageflow/internal/browser"
)

// Suite defaults
const (
	DefaultBaseURL   = "https://rahulshettyacademy.com/client"
	DefaultRetailURL = "https://www.solotodo.cl/"
	DefaultResults   = "reports"
)

// SuiteConfig holds everything a suite run needs besides the database
type SuiteConfig struct {
	BaseURL         string
	RetailURL       string
	Browser         browser.Config
	WaitTimeout     time.Duration
	PollInterval    time.Duration
	SettleDelay     time.Duration
	SuggestionIndex int
	MaxRetries      int
	ResultsDir      string
	DataFile        string
}

// LoadSuiteConfig loads suite configuration from environment variables.
// Unset variables take their defaults; malformed values are errors.
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:    orDefault(getenv("PAGEFLOW_BASE_URL"), DefaultBaseURL),
		RetailURL:  orDefault(getenv("PAGEFLOW_RETAIL_URL"), DefaultRetailURL),
		ResultsDir: orDefault(getenv("PAGEFLOW_RESULTS_DIR"), DefaultResults),
		DataFile:   getenv("PAGEFLOW_DATA_FILE"),
	}

	var err error
	if config.Browser.Driver, err = browser.ParseDriver(orDefault(getenv("PAGEFLOW_DRIVER"), string(browser.DriverPlaywright))); err != nil {
		return nil, fmt.Errorf("PAGEFLOW_DRIVER: %w", err)
	}
	if config.Browser.Engine, err = browser.ParseEngine(orDefault(getenv("PAGEFLOW_BROWSER"), string(browser.EngineChrome))); err != nil {
		return nil, fmt.Errorf("PAGEFLOW_BROWSER: %w", err)
	}
	if err := config.Browser.Validate(); err != nil {
		return nil, err
	}
	if config.Browser.Headless, err = parseBool(getenv, "PAGEFLOW_HEADLESS", true); err != nil {
		return nil, err
	}

	if config.WaitTimeout, err = parseDuration(getenv, "PAGEFLOW_WAIT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.PollInterval, err = parseDuration(getenv, "PAGEFLOW_POLL_INTERVAL", 200*time.Millisecond); err != nil {
		return nil, err
	}
	if config.SettleDelay, err = parseDuration(getenv, "PAGEFLOW_SETTLE_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if config.WaitTimeout <= 0 || config.PollInterval <= 0 {
		return nil, fmt.Errorf("PAGEFLOW_WAIT_TIMEOUT and PAGEFLOW_POLL_INTERVAL must be positive")
	}
	if config.SettleDelay < 0 {
		return nil, fmt.Errorf("PAGEFLOW_SETTLE_DELAY cannot be negative")
	}

	if config.SuggestionIndex, err = parseInt(getenv, "PAGEFLOW_SUGGESTION_INDEX", 1); err != nil {
		return nil, err
	}
	if config.MaxRetries, err = parseInt(getenv, "PAGEFLOW_MAX_RETRIES", 2); err != nil {
		return nil, err
	}

	return config, nil
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %q", key, raw)
	}
	return v, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 10s: %q", key, raw)
	}
	return v, nil
}

func parseInt(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer: %q", key, raw)
	}
	return v, nil
}
