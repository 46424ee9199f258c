// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/YelnurShh/infoqaz/store"
)

// NewTestSQLiteStore creates an in-memory store seeded with the built-in
// topics, closed automatically when the test ends.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
