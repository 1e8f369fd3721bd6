// Package slog provides logging decorators for hermes services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hermes"
)

// Ensure LoggingEmbedder implements hermes.Embedder.
var _ hermes.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   hermes.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next hermes.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"model", e.next.Model(),
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}

// Dimensions delegates to the wrapped embedder.
func (e *LoggingEmbedder) Dimensions() int {
	return e.next.Dimensions()
}

// MaxTokens delegates to the wrapped embedder.
func (e *LoggingEmbedder) MaxTokens() int {
	return e.next.MaxTokens()
}
