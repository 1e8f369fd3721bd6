// Package search answers semantic queries against the chunk store.
package search

import (
	"context"

	"github.com/fwojciec/hermes"
)

// Ensure Searcher implements hermes.SearchService at compile time.
var _ hermes.SearchService = (*Searcher)(nil)

// Searcher embeds queries and looks up the nearest chunks.
type Searcher struct {
	Embedder hermes.Embedder
	Chunks   hermes.ChunkService
}

// NewSearcher creates a new Searcher.
func NewSearcher(embedder hermes.Embedder, chunks hermes.ChunkService) *Searcher {
	return &Searcher{Embedder: embedder, Chunks: chunks}
}

// Search normalizes the query the same way page text is normalized before
// indexing, embeds it and returns the closest chunks. The result is never nil.
func (s *Searcher) Search(ctx context.Context, query string, opts hermes.SearchOptions) ([]*hermes.SearchResult, error) {
	q := hermes.Normalize(query)
	if q == "" {
		return nil, hermes.Errorf(hermes.EINVALID, "search text required")
	}

	vectors, err := s.Embedder.Embed(ctx, []string{q})
	if err != nil {
		return nil, hermes.Errorf(hermes.EUNAVAILABLE, "embed query: %v", err)
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return nil, hermes.Errorf(hermes.EINTERNAL, "embedder returned no vector for query")
	}

	results, err := s.Chunks.NearestChunks(ctx, vectors[0], opts.EffectiveLimit())
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*hermes.SearchResult{}
	}
	return results, nil
}
