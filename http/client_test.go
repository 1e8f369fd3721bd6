package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/hermes"
	hermeshttp "github.com/fwojciec/hermes/http"
	"github.com/fwojciec/hermes/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Parallel()

	start := func(t *testing.T, s *hermeshttp.Server) *hermeshttp.Client {
		t.Helper()
		ts := httptest.NewServer(s)
		t.Cleanup(ts.Close)
		return hermeshttp.NewClient(ts.URL)
	}

	t.Run("dir path round trip", func(t *testing.T) {
		t.Parallel()

		client := start(t, newTestServer(memSettings(""), nil))
		ctx := context.Background()

		_, err := client.DirPath(ctx)
		assert.Equal(t, hermes.ENOTFOUND, hermes.ErrorCode(err))

		dir := t.TempDir()
		require.NoError(t, client.SetDirPath(ctx, dir))

		got, err := client.DirPath(ctx)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("set dir returns the cleaned path", func(t *testing.T) {
		t.Parallel()

		client := start(t, newTestServer(memSettings(""), nil))
		dir := t.TempDir()

		got, err := client.SetDir(context.Background(), dir+"/./")

		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("invalid directory maps back to EINVALID", func(t *testing.T) {
		t.Parallel()

		client := start(t, newTestServer(memSettings(""), nil))

		err := client.SetDirPath(context.Background(), "/no/such/dir")

		require.Error(t, err)
		assert.Equal(t, hermes.EINVALID, hermes.ErrorCode(err))
		assert.Contains(t, hermes.ErrorMessage(err), "does not exist")
	})

	t.Run("search returns results", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts hermes.SearchOptions) ([]*hermes.SearchResult, error) {
				assert.Equal(t, 7, opts.Limit)
				return []*hermes.SearchResult{{Path: "/pdfs/a.pdf", Page: 2, Text: query}}, nil
			},
		}
		client := start(t, newTestServer(memSettings("/pdfs"), search))

		results, err := client.Search(context.Background(), "hello", hermes.SearchOptions{Limit: 7})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "/pdfs/a.pdf", results[0].Path)
		assert.Equal(t, 2, results[0].Page)
		assert.Nil(t, results[0].Distance)
	})

	t.Run("status returns counts", func(t *testing.T) {
		t.Parallel()

		client := start(t, newTestServer(memSettings("/pdfs"), nil))

		status, err := client.Status(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/pdfs", status.DirPath)
		assert.Equal(t, 2, status.Files)
		assert.Equal(t, 42, status.Chunks)
	})

	t.Run("ask without asker is not implemented", func(t *testing.T) {
		t.Parallel()

		client := start(t, newTestServer(memSettings("/pdfs"), nil))

		_, err := client.Ask(context.Background(), "why?")

		assert.Equal(t, hermes.ENOTIMPLEMENTED, hermes.ErrorCode(err))
	})

	t.Run("unreachable server is unavailable", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := hermeshttp.NewClient(url).DirPath(context.Background())

		assert.Equal(t, hermes.EUNAVAILABLE, hermes.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(ts.Close)

		client := hermeshttp.NewClient(ts.URL, hermeshttp.WithTimeout(10*time.Millisecond))
		_, err := client.DirPath(context.Background())

		assert.Equal(t, hermes.EUNAVAILABLE, hermes.ErrorCode(err))
	})

	t.Run("adds scheme when missing", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(newTestServer(memSettings("/pdfs"), nil))
		t.Cleanup(ts.Close)

		client := hermeshttp.NewClient(ts.Listener.Addr().String())
		got, err := client.DirPath(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/pdfs", got)
	})
}
