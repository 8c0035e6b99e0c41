package report

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/models"
	"github.com/storefront-qa/pageflow/internal/scenario"
)

// AttemptStore persists attempts; *repository.AttemptRepository implements it
type AttemptStore interface {
	CreateAttempt(ctx context.Context, attempt *models.Attempt) error
	FinishAttempt(ctx context.Context, attempt *models.Attempt) error
}

// StoreListener writes every attempt to an AttemptStore. Register it after
// the ScreenshotListener so failures carry the screenshot path.
// Store errors are logged and never fail the scenario.
type StoreListener struct {
	scenario.NopListener
	store AttemptStore

	mu      sync.Mutex
	running map[string]*models.Attempt
}

// NewStoreListener creates a listener backed by store
func NewStoreListener(store AttemptStore) *StoreListener {
	return &StoreListener{store: store, running: map[string]*models.Attempt{}}
}

func (l *StoreListener) OnStart(ctx context.Context, sc *scenario.Context) {
	attempt, err := models.NewAttempt(sc.ID.String(), sc.RunID.String(), sc.Name, sc.Attempt)
	if err != nil {
		sc.Log.WithError(err).Warn("failed to record attempt")
		return
	}
	attempt.StartedAt = sc.StartedAt
	if err := l.store.CreateAttempt(ctx, attempt); err != nil {
		sc.Log.WithError(err).Warn("failed to store attempt")
		return
	}

	l.mu.Lock()
	l.running[attempt.ID] = attempt
	l.mu.Unlock()
}

func (l *StoreListener) OnSuccess(ctx context.Context, sc *scenario.Context) {
	l.finish(ctx, sc, func(a *models.Attempt) error { return a.Pass() })
}

func (l *StoreListener) OnFailure(ctx context.Context, sc *scenario.Context, err error) {
	l.finish(ctx, sc, func(a *models.Attempt) error {
		return a.Fail(
			string(scenario.KindOf(err)),
			scenario.Implicated(err),
			string(sc.LastScreen()),
			sc.Screenshot,
			err.Error(),
		)
	})
}

func (l *StoreListener) finish(ctx context.Context, sc *scenario.Context, transition func(*models.Attempt) error) {
	id := sc.ID.String()
	l.mu.Lock()
	attempt, ok := l.running[id]
	delete(l.running, id)
	l.mu.Unlock()
	if !ok {
		return
	}

	log := sc.Log.WithFields(logrus.Fields{"attempt_id": id})
	if err := transition(attempt); err != nil {
		log.WithError(err).Warn("failed to finish attempt")
		return
	}
	if err := l.store.FinishAttempt(ctx, attempt); err != nil {
		log.WithError(err).Warn("failed to store attempt result")
	}
}
