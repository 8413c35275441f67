package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"Quill/internal/core/users"
	"Quill/internal/db/migrations"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, migrates it and empties every table.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL repository tests")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db), "Failed to run migrations")

	_, err = db.Exec(`TRUNCATE follows, favorites, posts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

// createTestUser inserts a user with a throwaway password hash
func createTestUser(t *testing.T, db *sql.DB, username string) *users.User {
	t.Helper()
	user, err := NewUserRepository(db).Create(context.Background(), &users.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealhashnot",
	})
	require.NoError(t, err)
	return user
}
