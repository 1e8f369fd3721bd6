package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/hermes"
	"github.com/fwojciec/hermes/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_DirPath(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when unset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSettingsService(setupTestDB(t))

		_, err := svc.DirPath(context.Background())

		require.Error(t, err)
		assert.Equal(t, hermes.ENOTFOUND, hermes.ErrorCode(err))
	})

	t.Run("returns stored path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSettingsService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SetDirPath(ctx, "/home/me/pdfs"))

		got, err := svc.DirPath(ctx)

		require.NoError(t, err)
		assert.Equal(t, "/home/me/pdfs", got)
	})

	t.Run("replaces previous path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSettingsService(db)
		ctx := context.Background()
		require.NoError(t, svc.SetDirPath(ctx, "/first"))
		require.NoError(t, svc.SetDirPath(ctx, "/second"))

		got, err := svc.DirPath(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/second", got)

		var rows int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings WHERE key = 'dir_path'").Scan(&rows))
		assert.Equal(t, 1, rows)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSettingsService(setupTestDB(t))

		err := svc.SetDirPath(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, hermes.EINVALID, hermes.ErrorCode(err))
	})
}

func TestSettingsService_EmbeddingModel(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND before first index", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSettingsService(setupTestDB(t))

		_, err := svc.EmbeddingModel(context.Background())

		assert.Equal(t, hermes.ENOTFOUND, hermes.ErrorCode(err))
	})

	t.Run("stores model independently of dir path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSettingsService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SetDirPath(ctx, "/pdfs"))
		require.NoError(t, svc.SetEmbeddingModel(ctx, "text-embedding-ada-002"))

		model, err := svc.EmbeddingModel(ctx)
		require.NoError(t, err)
		assert.Equal(t, "text-embedding-ada-002", model)

		dir, err := svc.DirPath(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/pdfs", dir)
	})
}
