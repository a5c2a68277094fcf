// Package testdb opens a migrated PostgreSQL database for repository tests.
// Tests are skipped unless ENHANCER_TEST_DATABASE_URL is set.
package testdb

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chillyai/enhancer/migrations"
)

const EnvURL = "ENHANCER_TEST_DATABASE_URL"

// Open migrates the database named by ENHANCER_TEST_DATABASE_URL to the
// latest version and returns a connection closed at test cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set", EnvURL)
	}

	m, err := migrations.New(url)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	m.Close()

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// CreateUser inserts a password-less user and returns its id.
func CreateUser(t testing.TB, db *sql.DB) string {
	t.Helper()

	var id string
	err := db.QueryRow(`INSERT INTO users DEFAULT VALUES RETURNING id`).Scan(&id)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}
