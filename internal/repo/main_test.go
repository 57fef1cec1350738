package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/tripcrew/migrations"
	"github.com/pkordes/tripcrew/testutil"
)

// TestMain brings the test database schema up to date once per test binary.
// Without TEST_DATABASE_URL only the in-memory contract tests run; the
// Postgres variants skip themselves through testutil.NewPool.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
