package main

import (
	"fmt"

	"github.com/fwojciec/hermes"
	hermeshttp "github.com/fwojciec/hermes/http"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status, err := c.status(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
		return err
	}

	dir := status.DirPath
	if dir == "" {
		dir = "(not set)"
	}
	fmt.Fprintf(deps.Stdout, "Directory: %s\n", dir)
	fmt.Fprintf(deps.Stdout, "Files:     %d\n", status.Files)
	fmt.Fprintf(deps.Stdout, "Chunks:    %d\n", status.Chunks)
	return nil
}

func (c *StatusCmd) status(deps *Dependencies) (*hermeshttp.StatusResponse, error) {
	if deps.Remote != nil {
		return deps.Remote.Status(deps.Ctx)
	}

	var status hermeshttp.StatusResponse

	dir, err := deps.Settings.DirPath(deps.Ctx)
	if err != nil && hermes.ErrorCode(err) != hermes.ENOTFOUND {
		return nil, err
	}
	status.DirPath = dir

	files, err := deps.Files.FindFiles(deps.Ctx, hermes.FileFilter{})
	if err != nil {
		return nil, err
	}
	status.Files = len(files)

	status.Chunks, err = deps.Chunks.CountChunks(deps.Ctx)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
