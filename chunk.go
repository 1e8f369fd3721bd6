package hermes

import (
	"context"
)

// Search limits.
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

// Chunk is a piece of page text together with its embedding.
// Long pages produce several chunks sharing the same path and page.
type Chunk struct {
	ID        string    `json:"id"`
	FileID    string    `json:"fileId"`
	Path      string    `json:"path"` // Denormalized for result rendering
	Page      int       `json:"page"`
	Position  int       `json:"position"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.FileID == "" {
		return Errorf(EINVALID, "chunk file ID required")
	}
	if c.Path == "" {
		return Errorf(EINVALID, "chunk path required")
	}
	if c.Page < 1 {
		return Errorf(EINVALID, "chunk page must be positive")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a single transaction.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter, ordered by path, page and position.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// CountChunks returns the total number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunksByFile removes all chunks for a file.
	DeleteChunksByFile(ctx context.Context, fileID string) error

	// NearestChunks returns up to limit chunks closest to embedding,
	// ordered by ascending squared L2 distance.
	NearestChunks(ctx context.Context, embedding []float32, limit int) ([]*SearchResult, error)
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	FileID *string `json:"fileId"`
	Path   *string `json:"path"`
	Page   *int    `json:"page"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SearchResult is one matched snippet.
type SearchResult struct {
	Path     string   `json:"path"`
	Page     int      `json:"page"`
	Text     string   `json:"text"`
	Distance *float32 `json:"distance,omitempty"`
}

// Validate returns an error if the result lacks its location.
func (r *SearchResult) Validate() error {
	if r.Path == "" {
		return Errorf(EINVALID, "result path required")
	}
	if r.Page < 1 {
		return Errorf(EINVALID, "result page required")
	}
	return nil
}

// SearchService provides semantic search over indexed PDFs.
type SearchService interface {
	// Search returns snippets ordered by relevance to the query.
	// Returns EINVALID if the query is blank.
	Search(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results to return. Zero means DefaultSearchLimit.
	Limit int `json:"limit,omitempty"`
}

// EffectiveLimit returns the limit clamped to [1, MaxSearchLimit].
func (o SearchOptions) EffectiveLimit() int {
	switch {
	case o.Limit <= 0:
		return DefaultSearchLimit
	case o.Limit > MaxSearchLimit:
		return MaxSearchLimit
	default:
		return o.Limit
	}
}
