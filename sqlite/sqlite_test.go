package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/hermes/sqlite"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens an in-memory database closed at test cleanup.
func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, table := range []string{"settings", "files", "chunks"} {
			var n int
			err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
			require.NoError(t, err, table)
		}
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewSettingsService(db).SetDirPath(ctx, "/pdfs"))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		got, err := sqlite.NewSettingsService(db).DirPath(ctx)
		require.NoError(t, err)
		require.Equal(t, "/pdfs", got)
	})
}

func TestDB_Compact(t *testing.T) {
	t.Parallel()

	dbPath := t.TempDir() + "/test.db"
	db := sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	defer db.Close()

	require.NoError(t, db.Compact(context.Background()))
}
