// Package testutil holds shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyeon/vocaflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { MustClose(t, database) })
	return database
}

// CreateTestUser inserts a bare user row plus its default progress row and
// returns the user id. Handy for store tests that need a foreign key target.
func CreateTestUser(t *testing.T, database *db.DB, username string) string {
	t.Helper()

	id := "test-" + username
	_, err := database.Exec(`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		id, username, "x")
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO user_progress (user_id) VALUES (?)`, id)
	require.NoError(t, err)
	return id
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
