package index_test

import (
	"testing"

	"github.com/fwojciec/hermes/index"
	"github.com/stretchr/testify/assert"
)

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	t.Run("returns path unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/a/b.pdf", index.TruncatePath("/a/b.pdf", 50))
	})

	t.Run("keeps the end of long paths", func(t *testing.T) {
		t.Parallel()
		result := index.TruncatePath("/home/user/documents/reports/annual.pdf", 20)
		assert.Equal(t, "...eports/annual.pdf", result)
		assert.Len(t, []rune(result), 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, index.TruncatePath("/a.pdf", 0))
		assert.Empty(t, index.TruncatePath("/a.pdf", -1))
	})

	t.Run("returns prefix when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/ho", index.TruncatePath("/home/a.pdf", 3))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/dé.pdf", index.TruncatePath("/dé.pdf", 7))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", index.FormatBytes(512))
	assert.Equal(t, "1.5 KB", index.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", index.FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0 GB", index.FormatBytes(3*1024*1024*1024))
}
