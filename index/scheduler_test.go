package index_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/hermes"
	"github.com/fwojciec/hermes/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context, progress index.ProgressFunc) (*index.Result, error)

func (f runnerFunc) Run(ctx context.Context, progress index.ProgressFunc) (*index.Result, error) {
	return f(ctx, progress)
}

type compactorFunc func(ctx context.Context) error

func (f compactorFunc) Compact(ctx context.Context) error {
	return f(ctx)
}

func TestScheduler_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs immediately and on every tick", func(t *testing.T) {
		t.Parallel()

		var runs atomic.Int32
		s := index.NewScheduler(runnerFunc(func(context.Context, index.ProgressFunc) (*index.Result, error) {
			runs.Add(1)
			return &index.Result{}, nil
		}), nil, nil)
		s.Interval = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)
	})

	t.Run("trigger starts a run before the next tick", func(t *testing.T) {
		t.Parallel()

		var runs atomic.Int32
		s := index.NewScheduler(runnerFunc(func(context.Context, index.ProgressFunc) (*index.Result, error) {
			runs.Add(1)
			return &index.Result{}, nil
		}), nil, nil)
		s.Interval = time.Hour

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.Run(ctx) }()

		require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
		s.Trigger()
		require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("coalesces triggers while a run is in progress", func(t *testing.T) {
		t.Parallel()

		var runs atomic.Int32
		release := make(chan struct{})
		s := index.NewScheduler(runnerFunc(func(context.Context, index.ProgressFunc) (*index.Result, error) {
			if runs.Add(1) == 1 {
				<-release
			}
			return &index.Result{}, nil
		}), nil, nil)
		s.Interval = time.Hour

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.Run(ctx) }()

		require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
		s.Trigger()
		s.Trigger()
		s.Trigger()
		close(release)

		require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(2), runs.Load())
	})

	t.Run("keeps running when dir path is unset", func(t *testing.T) {
		t.Parallel()

		var runs atomic.Int32
		s := index.NewScheduler(runnerFunc(func(context.Context, index.ProgressFunc) (*index.Result, error) {
			runs.Add(1)
			return nil, hermes.Errorf(hermes.ENOTFOUND, "dir path not set")
		}), nil, nil)
		s.Interval = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.Run(ctx) }()

		require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("compacts on its own schedule", func(t *testing.T) {
		t.Parallel()

		var compactions atomic.Int32
		s := index.NewScheduler(runnerFunc(func(context.Context, index.ProgressFunc) (*index.Result, error) {
			return &index.Result{}, nil
		}), compactorFunc(func(context.Context) error {
			compactions.Add(1)
			return nil
		}), nil)
		s.Interval = time.Hour
		s.CompactEvery = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.Run(ctx) }()

		require.Eventually(t, func() bool { return compactions.Load() >= 1 }, time.Second, 5*time.Millisecond)
	})
}
