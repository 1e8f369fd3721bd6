package mock

import (
	"context"

	"github.com/fwojciec/hermes/index"
)

var _ index.Runner = (*IndexRunner)(nil)

// IndexRunner is a mock implementation of index.Runner.
type IndexRunner struct {
	RunFn func(ctx context.Context, progress index.ProgressFunc) (*index.Result, error)
}

func (r *IndexRunner) Run(ctx context.Context, progress index.ProgressFunc) (*index.Result, error) {
	return r.RunFn(ctx, progress)
}
