package main

import (
	"fmt"

	"github.com/fwojciec/hermes"
)

// Run executes the dir command.
func (c *DirCmd) Run(deps *Dependencies) error {
	if c.Path == "" {
		dir, err := deps.Settings.DirPath(deps.Ctx)
		if hermes.ErrorCode(err) == hermes.ENOTFOUND {
			fmt.Fprintln(deps.Stdout, "No directory set.")
			return nil
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, dir)
		return nil
	}

	path, err := c.setDir(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hermes.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Directory set to %s\n", path)
	return nil
}

// setDir stores the directory and returns the cleaned path. A remote server
// validates the path on its own filesystem.
func (c *DirCmd) setDir(deps *Dependencies) (string, error) {
	if deps.Remote != nil {
		return deps.Remote.SetDir(deps.Ctx, c.Path)
	}

	path, err := hermes.CleanDirPath(c.Path)
	if err != nil {
		return "", err
	}
	if err := deps.Settings.SetDirPath(deps.Ctx, path); err != nil {
		return "", err
	}
	return path, nil
}
