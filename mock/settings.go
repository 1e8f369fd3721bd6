package mock

import (
	"context"

	"github.com/fwojciec/hermes"
)

var (
	_ hermes.SettingsService = (*SettingsService)(nil)
	_ hermes.ModelSettings   = (*SettingsService)(nil)
)

// SettingsService is a mock implementation of hermes.SettingsService and
// hermes.ModelSettings.
type SettingsService struct {
	DirPathFn           func(ctx context.Context) (string, error)
	SetDirPathFn        func(ctx context.Context, path string) error
	EmbeddingModelFn    func(ctx context.Context) (string, error)
	SetEmbeddingModelFn func(ctx context.Context, model string) error
}

func (s *SettingsService) DirPath(ctx context.Context) (string, error) {
	return s.DirPathFn(ctx)
}

func (s *SettingsService) SetDirPath(ctx context.Context, path string) error {
	return s.SetDirPathFn(ctx, path)
}

func (s *SettingsService) EmbeddingModel(ctx context.Context) (string, error) {
	return s.EmbeddingModelFn(ctx)
}

func (s *SettingsService) SetEmbeddingModel(ctx context.Context, model string) error {
	return s.SetEmbeddingModelFn(ctx, model)
}
