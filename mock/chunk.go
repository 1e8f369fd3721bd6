package mock

import (
	"context"

	"github.com/fwojciec/hermes"
)

var _ hermes.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of hermes.ChunkService.
type ChunkService struct {
	CreateChunksFn       func(ctx context.Context, chunks []*hermes.Chunk) error
	FindChunksFn         func(ctx context.Context, filter hermes.ChunkFilter) ([]*hermes.Chunk, error)
	CountChunksFn        func(ctx context.Context) (int, error)
	DeleteChunksByFileFn func(ctx context.Context, fileID string) error
	NearestChunksFn      func(ctx context.Context, embedding []float32, limit int) ([]*hermes.SearchResult, error)
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*hermes.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter hermes.ChunkFilter) ([]*hermes.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}

func (s *ChunkService) DeleteChunksByFile(ctx context.Context, fileID string) error {
	return s.DeleteChunksByFileFn(ctx, fileID)
}

func (s *ChunkService) NearestChunks(ctx context.Context, embedding []float32, limit int) ([]*hermes.SearchResult, error) {
	return s.NearestChunksFn(ctx, embedding, limit)
}

var _ hermes.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of hermes.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts hermes.SearchOptions) ([]*hermes.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts hermes.SearchOptions) ([]*hermes.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
