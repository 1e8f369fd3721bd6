package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/hermes"
	main "github.com/fwojciec/hermes/cmd/hermes"
	"github.com/fwojciec/hermes/index"
	"github.com/fwojciec/hermes/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints progress and summary", func(t *testing.T) {
		t.Parallel()

		runner := &mock.IndexRunner{
			RunFn: func(_ context.Context, progress index.ProgressFunc) (*index.Result, error) {
				progress(index.ProgressEvent{Type: index.ProgressStarted, Total: 2})
				progress(index.ProgressEvent{Type: index.ProgressCompleted, Completed: 1, Total: 2, Path: "/pdfs/a.pdf", Chunks: 4})
				progress(index.ProgressEvent{Type: index.ProgressFailed, Completed: 2, Total: 2, Path: "/pdfs/bad.pdf", Error: hermes.Errorf(hermes.EINVALID, "not a PDF")})
				progress(index.ProgressEvent{Type: index.ProgressFinished, Completed: 2, Total: 2})
				return &index.Result{Found: 3, Added: 1, Failed: 1, Pages: 2, Chunks: 4, Bytes: 2048}, nil
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Indexer: runner}

		err := (&main.IndexCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Indexing 2 files")
		assert.Contains(t, out, "[1/2] /pdfs/a.pdf (4 chunks)")
		assert.Contains(t, out, "Indexed 3 files (1 added, 0 modified, 0 deleted, 1 failed)")
		assert.Contains(t, out, "2 pages, 4 chunks from 2.0 KB")
		assert.Contains(t, stderr.String(), "skip /pdfs/bad.pdf: not a PDF")
	})

	t.Run("reports up to date index", func(t *testing.T) {
		t.Parallel()

		runner := &mock.IndexRunner{
			RunFn: func(context.Context, index.ProgressFunc) (*index.Result, error) {
				return &index.Result{Found: 7}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Indexer: runner}

		err := (&main.IndexCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Index up to date (7 files)\n", stdout.String())
	})

	t.Run("explains missing directory", func(t *testing.T) {
		t.Parallel()

		runner := &mock.IndexRunner{
			RunFn: func(context.Context, index.ProgressFunc) (*index.Result, error) {
				return nil, hermes.Errorf(hermes.ENOTFOUND, "dir path not set")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Indexer: runner}

		err := (&main.IndexCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "hermes dir <path>")
	})

	t.Run("reports run errors", func(t *testing.T) {
		t.Parallel()

		runner := &mock.IndexRunner{
			RunFn: func(context.Context, index.ProgressFunc) (*index.Result, error) {
				return nil, errors.New("database locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Indexer: runner}

		err := (&main.IndexCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error.")
	})
}
