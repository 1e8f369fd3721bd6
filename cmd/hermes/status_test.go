package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/hermes"
	main "github.com/fwojciec/hermes/cmd/hermes"
	hermeshttp "github.com/fwojciec/hermes/http"
	"github.com/fwojciec/hermes/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints local counts", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Settings: &mock.SettingsService{
				DirPathFn: func(context.Context) (string, error) { return "/pdfs", nil },
			},
			Files: &mock.FileService{
				FindFilesFn: func(context.Context, hermes.FileFilter) ([]*hermes.File, error) {
					return []*hermes.File{{Path: "/pdfs/a.pdf"}, {Path: "/pdfs/b.pdf"}}, nil
				},
			},
			Chunks: &mock.ChunkService{
				CountChunksFn: func(context.Context) (int, error) { return 17, nil },
			},
		}

		err := (&main.StatusCmd{}).Run(deps)

		require.NoError(t, err)
		out := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, out, "Directory: /pdfs")
		assert.Contains(t, out, "Files:     2")
		assert.Contains(t, out, "Chunks:    17")
	})

	t.Run("shows unset directory", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Settings: &mock.SettingsService{
				DirPathFn: func(context.Context) (string, error) {
					return "", hermes.Errorf(hermes.ENOTFOUND, "dir path not set")
				},
			},
			Files: &mock.FileService{
				FindFilesFn: func(context.Context, hermes.FileFilter) ([]*hermes.File, error) { return nil, nil },
			},
			Chunks: &mock.ChunkService{
				CountChunksFn: func(context.Context) (int, error) { return 0, nil },
			},
		}

		err := (&main.StatusCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Directory: (not set)")
	})

	t.Run("asks a remote server", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/status", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(hermeshttp.StatusResponse{DirPath: "/srv/pdfs", Files: 5, Chunks: 60})
		}))
		t.Cleanup(srv.Close)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Remote: hermeshttp.NewClient(srv.URL),
		}

		err := (&main.StatusCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Directory: /srv/pdfs")
		assert.Contains(t, stdout.String(), "Files:     5")
		assert.Contains(t, stdout.String(), "Chunks:    60")
	})
}
