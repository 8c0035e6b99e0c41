package config

import (
	"testing"
	"time"

	"github.com/storefront-qa/pageflow/internal/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadSuiteConfig_Defaults(t *testing.T) {
	cfg, err := LoadSuiteConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultRetailURL, cfg.RetailURL)
	assert.Equal(t, browser.Config{Driver: browser.DriverPlaywright, Engine: browser.EngineChrome, Headless: true}, cfg.Browser)
	assert.Equal(t, 10*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
	assert.Equal(t, 1, cfg.SuggestionIndex)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, "reports", cfg.ResultsDir)
	assert.Empty(t, cfg.DataFile)
}

func TestLoadSuiteConfig_Overrides(t *testing.T) {
	cfg, err := LoadSuiteConfig(env(map[string]string{
		"PAGEFLOW_BASE_URL":         "http://localhost:8080/client",
		"PAGEFLOW_DRIVER":           "chromedp",
		"PAGEFLOW_BROWSER":          "chrome",
		"PAGEFLOW_HEADLESS":         "false",
		"PAGEFLOW_WAIT_TIMEOUT":     "3s",
		"PAGEFLOW_POLL_INTERVAL":    "50ms",
		"PAGEFLOW_SETTLE_DELAY":     "0s",
		"PAGEFLOW_SUGGESTION_INDEX": "0",
		"PAGEFLOW_MAX_RETRIES":      "0",
		"PAGEFLOW_RESULTS_DIR":      "/tmp/shots",
		"PAGEFLOW_DATA_FILE":        "data/purchases.yaml",
	}))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/client", cfg.BaseURL)
	assert.Equal(t, browser.Config{Driver: browser.DriverChromedp, Engine: browser.EngineChrome}, cfg.Browser)
	assert.Equal(t, 3*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Zero(t, cfg.SettleDelay)
	assert.Zero(t, cfg.SuggestionIndex)
	assert.Zero(t, cfg.MaxRetries)
	assert.Equal(t, "/tmp/shots", cfg.ResultsDir)
	assert.Equal(t, "data/purchases.yaml", cfg.DataFile)
}

func TestLoadSuiteConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "PAGEFLOW_DRIVER", "selenium"},
		{"unknown browser", "PAGEFLOW_BROWSER", "safari"},
		{"bad headless", "PAGEFLOW_HEADLESS", "sometimes"},
		{"bad timeout", "PAGEFLOW_WAIT_TIMEOUT", "ten"},
		{"zero timeout", "PAGEFLOW_WAIT_TIMEOUT", "0s"},
		{"negative settle", "PAGEFLOW_SETTLE_DELAY", "-1s"},
		{"bad index", "PAGEFLOW_SUGGESTION_INDEX", "second"},
		{"negative retries", "PAGEFLOW_MAX_RETRIES", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuiteConfig(env(map[string]string{tt.key: tt.val}))
			assert.Error(t, err)
		})
	}
}

func TestLoadSuiteConfig_ChromedpNeedsChrome(t *testing.T) {
	_, err := LoadSuiteConfig(env(map[string]string{
		"PAGEFLOW_DRIVER":  "chromedp",
		"PAGEFLOW_BROWSER": "firefox",
	}))

	assert.ErrorIs(t, err, browser.ErrUnsupported)
}

func TestLoadPostgresConfig(t *testing.T) {
	base := map[string]string{
		"POSTGRES_USER":     "postgres",
		"POSTGRES_PASSWORD": "secret",
		"POSTGRES_DB":       "pageflow",
		"POSTGRES_HOSTNAME": "db",
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadPostgresConfig(env(base))
		require.NoError(t, err)
		assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=pageflow sslmode=disable", cfg.ConnectionString())
	})

	t.Run("port and sslmode", func(t *testing.T) {
		values := map[string]string{"POSTGRES_PORT": "6543", "POSTGRES_SSLMODE": "require"}
		for k, v := range base {
			values[k] = v
		}
		cfg, err := LoadPostgresConfig(env(values))
		require.NoError(t, err)
		assert.Equal(t, 6543, cfg.Port)
		assert.Equal(t, "require", cfg.SSLMode)
	})

	for _, key := range []string{"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOSTNAME"} {
		t.Run("missing "+key, func(t *testing.T) {
			values := map[string]string{}
			for k, v := range base {
				if k != key {
					values[k] = v
				}
			}
			_, err := LoadPostgresConfig(env(values))
			assert.ErrorContains(t, err, key)
		})
	}

	t.Run("bad port", func(t *testing.T) {
		values := map[string]string{"POSTGRES_PORT": "99999"}
		for k, v := range base {
			values[k] = v
		}
		_, err := LoadPostgresConfig(env(values))
		assert.Error(t, err)
	})
}

func TestLoadServerConfig(t *testing.T) {
	cfg, err := LoadServerConfig(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)

	cfg, err = LoadServerConfig(env(map[string]string{"PORT": "0"}))
	require.NoError(t, err)
	assert.Equal(t, "0", cfg.Port)

	_, err = LoadServerConfig(env(map[string]string{"PORT": "http"}))
	assert.Error(t, err)
}
