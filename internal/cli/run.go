package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/config"
	"github.com/storefront-qa/pageflow/internal/dataset"
	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/report"
	"github.com/storefront-qa/pageflow/internal/scenario"
	"github.com/storefront-qa/pageflow/internal/session"
	"github.com/storefront-qa/pageflow/internal/suites"
	"github.com/storefront-qa/pageflow/internal/wait"
)

// Suite names accepted by the run command
const (
	SuiteAll        = "all"
	SuiteStorefront = "storefront"
	SuiteRetail     = "retail"
)

// ErrFailedScenarios is returned by RunSuites when any scenario failed
var ErrFailedScenarios = errors.New("scenarios failed")

// RunDependencies holds what a suite run needs besides its configuration
type RunDependencies struct {
	Factory session.Factory
	// Store persists attempts; nil disables persistence
	Store  report.AttemptStore
	Logger logrus.FieldLogger
	Output io.Writer
}

// RunSuites executes the named suite, prints the summary to deps.Output
// and returns ErrFailedScenarios when anything failed
func RunSuites(ctx context.Context, cfg *config.SuiteConfig, suite string, deps RunDependencies) (*scenario.Summary, error) {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	purchases, err := LoadPurchases(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	scenarios, err := SelectScenarios(suite, suites.Config{
		BaseURL:   cfg.BaseURL,
		RetailURL: cfg.RetailURL,
		Purchases: purchases,
	})
	if err != nil {
		return nil, err
	}

	listeners := []scenario.Listener{
		report.NewLogListener(deps.Logger),
		report.NewScreenshotListener(cfg.ResultsDir),
	}
	if deps.Store != nil {
		listeners = append(listeners, report.NewStoreListener(deps.Store))
	}

	runner := scenario.NewRunner(deps.Factory, RunnerOptions(cfg), deps.Logger, listeners...)
	deps.Logger.WithFields(logrus.Fields{
		"run_id":    runner.RunID(),
		"suite":     suite,
		"scenarios": len(scenarios),
	}).Info("run started")

	summary := runner.RunAll(ctx, scenarios)
	if deps.Output != nil {
		if err := report.WriteSummary(deps.Output, summary); err != nil {
			return summary, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if summary.Failed() > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrFailedScenarios, summary.Failed(), len(summary.Results))
	}
	return summary, nil
}

// LoadPurchases reads the purchase dataset from path, or returns the default
// records when path is empty
func LoadPurchases(path string) ([]dataset.Purchase, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	purchases, err := dataset.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}
	return purchases, nil
}

// SelectScenarios returns the scenarios of a named suite
func SelectScenarios(suite string, cfg suites.Config) ([]scenario.Scenario, error) {
	switch suite {
	case SuiteAll, "":
		return suites.All(cfg), nil
	case SuiteStorefront:
		return suites.Storefront(cfg), nil
	case SuiteRetail:
		return suites.Retail(cfg), nil
	default:
		return nil, fmt.Errorf("unknown suite %q (want %s, %s or %s)", suite, SuiteAll, SuiteStorefront, SuiteRetail)
	}
}

// RunnerOptions maps the suite configuration onto runner options
func RunnerOptions(cfg *config.SuiteConfig) scenario.Options {
	settle := cfg.SettleDelay
	if settle == 0 {
		// the wait engine reads zero as "use the default"
		settle = -1
	}
	return scenario.Options{
		Retry: scenario.RetryPolicy{MaxRetries: cfg.MaxRetries},
		Wait: wait.Options{
			Timeout:      cfg.WaitTimeout,
			PollInterval: cfg.PollInterval,
			SettleDelay:  settle,
		},
		Pages:    pages.Options{SuggestionIndex: cfg.SuggestionIndex},
		Locators: pages.DefaultLocators(),
	}
}
