// Package report holds the scenario listeners that record what happened:
// structured log lines, failure screenshots and persisted attempts.
package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/scenario"
)

// LogListener logs every attempt through the attempt's logger
type LogListener struct {
	scenario.NopListener
	logger logrus.FieldLogger
}

// NewLogListener logs scenario results to logger; attempt events use the
// attempt's own entry
func NewLogListener(logger logrus.FieldLogger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnStart(_ context.Context, sc *scenario.Context) {
	sc.Log.Info("scenario started")
}

func (l *LogListener) OnSuccess(_ context.Context, sc *scenario.Context) {
	sc.Log.WithField("screen", sc.LastScreen()).Info("scenario passed")
}

func (l *LogListener) OnFailure(_ context.Context, sc *scenario.Context, err error) {
	sc.Log.WithFields(logrus.Fields{
		"kind":       scenario.KindOf(err),
		"implicated": scenario.Implicated(err),
		"screen":     sc.LastScreen(),
		"screenshot": sc.Screenshot,
	}).WithError(err).Error("scenario failed")
}

func (l *LogListener) OnFinish(_ context.Context, res *scenario.Result) {
	entry := l.logger.WithFields(logrus.Fields{
		"run_id":   res.RunID,
		"scenario": res.Name,
		"attempts": len(res.Attempts),
	})
	if res.Passed() {
		entry.Info("scenario finished: passed")
		return
	}
	entry.WithError(res.Err).Warn("scenario finished: failed")
}

// WriteSummary prints one line per scenario and a totals line
func WriteSummary(w io.Writer, summary *scenario.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "SCENARIO\tRESULT\tATTEMPTS\tKIND\tIMPLICATED\tSCREENSHOT\n")
	for _, r := range summary.Results {
		result := "PASS"
		var kind, implicated, shot string
		if !r.Passed() && len(r.Attempts) > 0 {
			last := r.Attempts[len(r.Attempts)-1]
			result = "FAIL"
			kind, implicated, shot = string(last.Kind), last.Implicated, last.Screenshot
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", r.Name, result, len(r.Attempts), kind, implicated, shot)
	}
	fmt.Fprintf(tw, "\n%d passed, %d failed (run %s)\n", summary.Passed(), summary.Failed(), summary.RunID)
	return tw.Flush()
}
