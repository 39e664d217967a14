package testutil

import (
	"testing"

	"da-go/internal/archive"
)

// NewTestArchive creates a new in-memory SQLite archive with migrations
// applied. The archive is automatically closed when the test completes.
func NewTestArchive(t *testing.T) archive.Archive {
	t.Helper()

	a, err := archive.NewSQLiteArchive(":memory:", FixedClock(), NewStubIDGenerator())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}

	t.Cleanup(func() {
		a.Close()
	})

	return a
}
