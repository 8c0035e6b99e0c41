package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront-qa/pageflow/internal/database"
	"github.com/storefront-qa/pageflow/internal/models"
)

// ErrAttemptNotFound is returned when no attempt row matches
var ErrAttemptNotFound = errors.New("attempt not found")

// AttemptRepository handles database operations for scenario attempts
type AttemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{
		db: database.DB,
	}
}

// NewAttemptRepositoryWithDB creates a new attempt repository with a specific database connection
func NewAttemptRepositoryWithDB(db *sql.DB) *AttemptRepository {
	return &AttemptRepository{
		db: db,
	}
}

// CreateAttempt inserts a running attempt
func (r *AttemptRepository) CreateAttempt(ctx context.Context, attempt *models.Attempt) error {
	query := `
		INSERT INTO attempts (id, run_id, scenario, number, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.RunID,
		attempt.Scenario,
		attempt.Number,
		attempt.Status,
		attempt.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}

	return nil
}

// FinishAttempt stores the final status and failure details of an attempt
func (r *AttemptRepository) FinishAttempt(ctx context.Context, attempt *models.Attempt) error {
	query := `
		UPDATE attempts
		SET status = $1, kind = $2, implicated = $3, screen = $4,
		    screenshot = $5, error_text = $6, finished_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		attempt.Status,
		attempt.Kind,
		attempt.Implicated,
		attempt.Screen,
		attempt.Screenshot,
		attempt.ErrorText,
		attempt.FinishedAt,
		attempt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish attempt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAttemptNotFound
	}

	return nil
}

const attemptColumns = `
		id, run_id, scenario, number, status,
		COALESCE(kind, ''), COALESCE(implicated, ''), COALESCE(screen, ''),
		COALESCE(screenshot, ''), COALESCE(error_text, ''),
		started_at, finished_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*models.Attempt, error) {
	attempt := &models.Attempt{}
	var finished sql.NullTime
	err := row.Scan(
		&attempt.ID,
		&attempt.RunID,
		&attempt.Scenario,
		&attempt.Number,
		&attempt.Status,
		&attempt.Kind,
		&attempt.Implicated,
		&attempt.Screen,
		&attempt.Screenshot,
		&attempt.ErrorText,
		&attempt.StartedAt,
		&finished,
	)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		attempt.FinishedAt = finished.Time
	}
	return attempt, nil
}

// GetAttempt retrieves an attempt by id
func (r *AttemptRepository) GetAttempt(ctx context.Context, id string) (*models.Attempt, error) {
	query := `SELECT` + attemptColumns + `FROM attempts WHERE id = $1`

	attempt, err := scanAttempt(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	return attempt, nil
}

// ListAttemptsByRun returns the attempts of a run in the order they started
func (r *AttemptRepository) ListAttemptsByRun(ctx context.Context, runID string) ([]*models.Attempt, error) {
	query := `SELECT` + attemptColumns + `FROM attempts WHERE run_id = $1 ORDER BY started_at, scenario, number`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return attempts, nil
}
