package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/hermes"
	hermeshttp "github.com/fwojciec/hermes/http"
	"github.com/fwojciec/hermes/index"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may finish after an
// interrupt.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	var compactor index.Compactor
	if deps.DB != nil {
		compactor = deps.DB
	}
	scheduler := index.NewScheduler(deps.Indexer, compactor, deps.Logger)
	scheduler.Interval = c.Interval

	server := hermeshttp.NewServer(deps.Logger)
	server.Settings = deps.Settings
	server.Files = deps.Files
	server.Chunks = deps.Chunks
	server.Search = deps.Search
	server.Asker = deps.Asker
	server.OnDirChange = scheduler.Trigger
	server.AllowOrigins = c.AllowOrigin

	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", c.Addr)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return scheduler.Run(ctx)
	})
	g.Go(func() error {
		if err := server.ListenAndServe(c.Addr); err != nil {
			return hermes.Errorf(hermes.EUNAVAILABLE, "listen on %s: %v", c.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
		return err
	}
	return nil
}
