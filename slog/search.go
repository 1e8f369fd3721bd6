package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hermes"
)

// Ensure LoggingSearchService implements hermes.SearchService.
var _ hermes.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   hermes.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next hermes.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts hermes.SearchOptions) (results []*hermes.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"limit", opts.EffectiveLimit(),
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
