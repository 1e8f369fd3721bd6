package index

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hermes"
)

// Scheduler defaults.
const (
	DefaultInterval     = time.Minute
	DefaultCompactEvery = 24 * time.Hour
)

// Runner performs one indexing pass.
type Runner interface {
	Run(ctx context.Context, progress ProgressFunc) (*Result, error)
}

// Compactor reclaims storage space.
type Compactor interface {
	Compact(ctx context.Context) error
}

// Scheduler runs the indexer periodically and compacts storage daily.
// Runs never overlap.
type Scheduler struct {
	Indexer      Runner
	Compactor    Compactor
	Interval     time.Duration
	CompactEvery time.Duration
	Logger       *slog.Logger

	trigger chan struct{}
}

// NewScheduler creates a Scheduler with default intervals.
func NewScheduler(indexer Runner, compactor Compactor, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		Indexer:      indexer,
		Compactor:    compactor,
		Interval:     DefaultInterval,
		CompactEvery: DefaultCompactEvery,
		Logger:       logger,
		trigger:      make(chan struct{}, 1),
	}
}

// Trigger requests an immediate run without blocking. Requests made while a
// run is pending are coalesced into one.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run indexes immediately and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	compactEvery := s.CompactEvery
	if compactEvery <= 0 {
		compactEvery = DefaultCompactEvery
	}

	s.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	compact := time.NewTicker(compactEvery)
	defer compact.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		case <-compact.C:
			s.compact(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	logger := s.logger()
	start := time.Now()

	result, err := s.Indexer.Run(ctx, func(ev ProgressEvent) {
		if ev.Type == ProgressFailed {
			logger.Warn("index file failed", "path", ev.Path, "error", ev.Error)
		}
	})
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return
	case hermes.ErrorCode(err) == hermes.ENOTFOUND:
		logger.Info("no dir path set, skipping index run")
		return
	default:
		logger.Error("index run failed", "error", err)
		return
	}

	if result.HasChanges() {
		logger.Info("index updated",
			"found", result.Found,
			"added", result.Added,
			"modified", result.Modified,
			"deleted", result.Deleted,
			"failed", result.Failed,
			"chunks", result.Chunks,
			"duration", time.Since(start),
		)
	}
}

func (s *Scheduler) compact(ctx context.Context) {
	if s.Compactor == nil {
		return
	}
	start := time.Now()
	if err := s.Compactor.Compact(ctx); err != nil {
		s.logger().Error("compaction failed", "error", err)
		return
	}
	s.logger().Info("compaction finished", "duration", time.Since(start))
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
