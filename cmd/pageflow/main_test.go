package main

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"serve", "run", "migrate"}, names)
	assert.Equal(t, "pageflow", app.Name)
}

func TestRunCommand_InvalidConfiguration(t *testing.T) {
	// GIVEN an unparsable wait timeout
	t.Setenv("PAGEFLOW_WAIT_TIMEOUT", "soon")
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard

	// WHEN
	err := app.RunContext(context.Background(), []string{"pageflow", "run", "--suite", "storefront"})

	// THEN the run stops before any browser is launched
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid suite configuration")
}

func TestConfigureLogging(t *testing.T) {
	level, formatter := logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})

	tests := []struct {
		name      string
		env       map[string]string
		wantLevel logrus.Level
		wantJSON  bool
		wantErr   bool
	}{
		{name: "defaults", wantLevel: level},
		{name: "debug as json", env: map[string]string{"PAGEFLOW_LOG_LEVEL": "debug", "PAGEFLOW_LOG_FORMAT": "json"}, wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "unknown level", env: map[string]string{"PAGEFLOW_LOG_LEVEL": "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logrus.SetLevel(level)

			err := configureLogging(func(key string) string { return tt.env[key] })

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logrus.GetLevel())
			_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
