package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hermes"
)

// Ensure LoggingExtractor implements hermes.Extractor.
var _ hermes.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   hermes.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next hermes.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs page and character counts.
func (e *LoggingExtractor) Extract(ctx context.Context, path string) (pages []hermes.PageText, err error) {
	defer func(begin time.Time) {
		chars := 0
		for _, p := range pages {
			chars += len(p.Content)
		}
		e.logger.Debug("extract",
			"path", path,
			"pages", len(pages),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, path)
}
