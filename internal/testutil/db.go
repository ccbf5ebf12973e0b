package testutil

import (
	"database/sql"
	"testing"

	"github.com/GravityPDF/gravity-pdf-images/internal/db"
)

// SetupTestDB creates a temporary in-memory SQLite database with migrations applied.
// The connection is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'resize_jobs'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to verify tables: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected resize_jobs table, found %d", count)
	}

	return database
}
