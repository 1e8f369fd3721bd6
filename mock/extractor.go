package mock

import (
	"context"

	"github.com/fwojciec/hermes"
)

var _ hermes.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of hermes.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, path string) ([]hermes.PageText, error)
}

func (e *Extractor) Extract(ctx context.Context, path string) ([]hermes.PageText, error) {
	return e.ExtractFn(ctx, path)
}
