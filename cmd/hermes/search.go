package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/hermes"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	results, err := deps.Search.Search(deps.Ctx, query, hermes.SearchOptions{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, hermes.FormatResults(results))
	return nil
}
