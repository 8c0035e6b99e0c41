package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/storefront-qa/pageflow/internal/config"
	"github.com/storefront-qa/pageflow/internal/database"
)

// testDefaults fill in the local docker postgres when the environment is empty
var testDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

// TestDatabase is one migrated schema owned by a single test
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a uniquely named schema, points a pool at it and
// applies the attempt migrations
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return testDefaults[key]
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}
	dsn := cfg.ConnectionString()

	admin, err := open(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "attempts_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		admin:      admin,
	}
	if _, err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", td.SchemaName)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", td.SchemaName, err)
	}

	td.DB, err = open(fmt.Sprintf("%s search_path=%s", dsn, td.SchemaName))
	if err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to connect to schema %s: %v", td.SchemaName, err)
	}
	td.DB.SetMaxOpenConns(5)
	td.DB.SetConnMaxLifetime(5 * time.Minute)

	if err := database.Migrate(context.Background(), td.DB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return td
}

// Teardown drops the schema and closes both pools
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: failed to drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
