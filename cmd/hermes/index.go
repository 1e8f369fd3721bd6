package main

import (
	"fmt"

	"github.com/fwojciec/hermes"
	"github.com/fwojciec/hermes/index"
)

// pathWidth is the display width for file paths in progress lines.
const pathWidth = 60

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Indexing %d files\n", event.Total)
		case index.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%d chunks)\n",
				event.Completed, event.Total, index.TruncatePath(event.Path, pathWidth), event.Chunks)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n",
				index.TruncatePath(event.Path, pathWidth), hermes.ErrorMessage(event.Error))
		case index.ProgressFinished:
			// Summary printed after indexing completes
		}
	}

	result, err := deps.Indexer.Run(deps.Ctx, progress)
	if err != nil {
		if hermes.ErrorCode(err) == hermes.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "error: no directory set. Use 'hermes dir <path>' first.")
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
		return err
	}

	if !result.HasChanges() {
		fmt.Fprintf(deps.Stdout, "Index up to date (%d files)\n", result.Found)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d files (%d added, %d modified, %d deleted, %d failed)\n",
		result.Found, result.Added, result.Modified, result.Deleted, result.Failed)
	if result.Chunks > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages, %d chunks from %s\n",
			result.Pages, result.Chunks, index.FormatBytes(result.Bytes))
	}
	return nil
}
