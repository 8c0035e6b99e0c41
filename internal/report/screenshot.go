package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/storefront-qa/pageflow/internal/scenario"
)

// ScreenshotListener saves a screenshot of every failed attempt to
// <dir>/<scenario>.png and records the path on the scenario context.
// A retry overwrites the previous attempt's file.
type ScreenshotListener struct {
	scenario.NopListener
	dir string
}

// NewScreenshotListener writes screenshots below dir, creating it on demand
func NewScreenshotListener(dir string) *ScreenshotListener {
	return &ScreenshotListener{dir: dir}
}

func (l *ScreenshotListener) OnFailure(ctx context.Context, sc *scenario.Context, _ error) {
	path, err := l.capture(ctx, sc)
	if err != nil {
		sc.Log.WithError(err).Warn("failed to capture failure screenshot")
		return
	}
	sc.Screenshot = path
	sc.Log.WithField("path", path).Info("failure screenshot saved")
}

func (l *ScreenshotListener) capture(ctx context.Context, sc *scenario.Context) (string, error) {
	sess := sc.Session()
	if sess == nil {
		return "", fmt.Errorf("no session to capture")
	}
	png, err := sess.Screenshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", l.dir, err)
	}
	path := filepath.Join(l.dir, FileName(sc.Name))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}

// FileName turns a scenario name into a screenshot file name
func FileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "scenario"
	}
	return clean + ".png"
}
