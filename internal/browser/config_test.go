package browser

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{"chrome", EngineChrome, false},
		{" Chrome ", EngineChrome, false},
		{"chromium", EngineChrome, false},
		{"EDGE", EngineEdge, false},
		{"firefox", EngineFirefox, false},
		{"safari", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEngine(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("ChromeDP")
	require.NoError(t, err)
	assert.Equal(t, DriverChromedp, d)

	d, err = ParseDriver("playwright")
	require.NoError(t, err)
	assert.Equal(t, DriverPlaywright, d)

	_, err = ParseDriver("selenium")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"playwright chrome", Config{Driver: DriverPlaywright, Engine: EngineChrome}, false},
		{"playwright edge", Config{Driver: DriverPlaywright, Engine: EngineEdge}, false},
		{"playwright firefox", Config{Driver: DriverPlaywright, Engine: EngineFirefox}, false},
		{"chromedp chrome", Config{Driver: DriverChromedp, Engine: EngineChrome}, false},
		{"chromedp firefox", Config{Driver: DriverChromedp, Engine: EngineFirefox}, true},
		{"chromedp edge", Config{Driver: DriverChromedp, Engine: EngineEdge}, true},
		{"missing driver", Config{Engine: EngineChrome}, true},
		{"missing engine", Config{Driver: DriverPlaywright}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupported)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLaunch_RejectsInvalidConfig(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)

	launcher, err := Launch(Config{Driver: DriverChromedp, Engine: EngineFirefox}, l)

	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Nil(t, launcher)
}

func TestSelector(t *testing.T) {
	assert.Equal(t, "css=#userEmail", selector(locator.ID("userEmail")))
	assert.Equal(t, "css=[routerlink*='cart']", selector(locator.AttrContains("routerlink", "cart")))
	assert.Equal(t, "xpath=//button[contains(@class,'ta-item')]",
		selector(locator.XPath("//button[contains(@class,'ta-item')]")))
}
