package mock

import (
	"context"

	"github.com/fwojciec/hermes"
)

var _ hermes.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of hermes.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, texts []string) ([][]float32, error)
	ModelFn      func() string
	DimensionsFn func() int
	MaxTokensFn  func() int
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Model() string {
	return e.ModelFn()
}

func (e *Embedder) Dimensions() int {
	return e.DimensionsFn()
}

func (e *Embedder) MaxTokens() int {
	return e.MaxTokensFn()
}
