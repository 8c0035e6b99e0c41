package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schema creates the attempts table; statements are idempotent
const Schema = `
	CREATE TABLE IF NOT EXISTS attempts (
		id UUID PRIMARY KEY,
		run_id UUID NOT NULL,
		scenario VARCHAR(255) NOT NULL,
		number INTEGER NOT NULL,
		status VARCHAR(50) NOT NULL,
		kind VARCHAR(50),
		implicated TEXT,
		screen VARCHAR(50),
		screenshot TEXT,
		error_text TEXT,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP,
		UNIQUE (run_id, scenario, number)
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_run_id ON attempts(run_id);
	CREATE INDEX IF NOT EXISTS idx_attempts_status ON attempts(status);
	`

// RunMigrations creates the necessary database tables
func RunMigrations(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if err := Migrate(ctx, DB); err != nil {
		return err
	}

	logrus.Info("database migrations completed successfully")
	return nil
}

// Migrate applies Schema to db
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create attempts table: %w", err)
	}
	return nil
}
