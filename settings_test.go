package hermes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/hermes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDirPath(t *testing.T) {
	t.Parallel()

	t.Run("returns absolute path for existing directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		got, err := hermes.CleanDirPath("  " + dir + "/./  ")

		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(dir), got)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		_, err := hermes.CleanDirPath("   ")

		require.Error(t, err)
		assert.Equal(t, hermes.EINVALID, hermes.ErrorCode(err))
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := hermes.CleanDirPath(filepath.Join(t.TempDir(), "missing"))

		require.Error(t, err)
		assert.Equal(t, hermes.EINVALID, hermes.ErrorCode(err))
		assert.Contains(t, hermes.ErrorMessage(err), "does not exist")
	})

	t.Run("rejects regular file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

		_, err := hermes.CleanDirPath(path)

		require.Error(t, err)
		assert.Contains(t, hermes.ErrorMessage(err), "not a directory")
	})
}

func TestSearchOptions_EffectiveLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, hermes.DefaultSearchLimit, hermes.SearchOptions{}.EffectiveLimit())
	assert.Equal(t, 7, hermes.SearchOptions{Limit: 7}.EffectiveLimit())
	assert.Equal(t, hermes.MaxSearchLimit, hermes.SearchOptions{Limit: 1000}.EffectiveLimit())
}

func TestSearchResult_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&hermes.SearchResult{Path: "/a.pdf", Page: 1}).Validate())
	assert.Equal(t, hermes.EINVALID, hermes.ErrorCode((&hermes.SearchResult{Page: 1}).Validate()))
	assert.Equal(t, hermes.EINVALID, hermes.ErrorCode((&hermes.SearchResult{Path: "/a.pdf"}).Validate()))
}
