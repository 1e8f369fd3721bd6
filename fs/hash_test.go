package fs_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hermes/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_Hash(t *testing.T) {
	t.Parallel()

	t.Run("same content produces same hash", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.pdf")
		b := filepath.Join(dir, "b.pdf")
		writeFile(t, a, "%PDF-1.4 same")
		writeFile(t, b, "%PDF-1.4 same")

		h := fs.NewHasher()
		ha, err := h.Hash(a)
		require.NoError(t, err)
		hb, err := h.Hash(b)
		require.NoError(t, err)

		assert.Equal(t, ha, hb)
		assert.Equal(t, fmt.Sprintf("%x", xxhash.Sum64String("%PDF-1.4 same")), ha)
	})

	t.Run("different content produces different hash", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.pdf")
		b := filepath.Join(dir, "b.pdf")
		writeFile(t, a, "one")
		writeFile(t, b, "two")

		h := fs.NewHasher()
		ha, err := h.Hash(a)
		require.NoError(t, err)
		hb, err := h.Hash(b)
		require.NoError(t, err)

		assert.NotEqual(t, ha, hb)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewHasher().Hash(filepath.Join(t.TempDir(), "nope.pdf"))

		assert.Error(t, err)
	})
}
