package gormstore_test

import (
	"testing"

	"github.com/dom/taskchat-backend/internal/testutil"
)

// forEachStore runs fn against in-memory sqlite and, unless -short is set,
// against a PostgreSQL container.
func forEachStore(t *testing.T, fn func(t *testing.T, testDB *testutil.TestDB)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, testutil.NewTestDB(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, testutil.NewPostgresTestDB(t))
	})
}
