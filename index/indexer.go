// Package index keeps the chunk store in sync with the PDFs in the configured
// directory. It finds changed files, extracts and chunks their pages, embeds
// the chunks and stores them.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/fwojciec/hermes"
	"golang.org/x/sync/errgroup"
)

// Indexer defaults.
const (
	DefaultConcurrency = 4
	DefaultBatchSize   = 16
)

// Indexer synchronizes the index with the PDF directory.
type Indexer struct {
	Settings    hermes.SettingsService
	Models      hermes.ModelSettings
	Files       hermes.FileService
	Chunks      hermes.ChunkService
	Finder      hermes.Finder
	Hasher      hermes.Hasher
	Extractor   hermes.Extractor
	Chunker     *Chunker
	Embedder    hermes.Embedder
	Concurrency int
	BatchSize   int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of an indexing run.
type Result struct {
	Found    int
	Added    int
	Modified int
	Deleted  int
	Failed   int
	Pages    int
	Chunks   int
	Bytes    int64
}

// HasChanges reports whether the run touched the index.
func (r *Result) HasChanges() bool {
	return r.Added > 0 || r.Modified > 0 || r.Deleted > 0 || r.Failed > 0
}

// ProgressEvent reports progress during an indexing run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Chunks    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting indexing progress.
type ProgressFunc func(event ProgressEvent)

// job is a file scheduled for (re)indexing.
type job struct {
	info     hermes.FileInfo
	hash     string
	modified bool
}

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	job
	pages  int
	chunks []*hermes.Chunk
	err    error
}

// Run performs one synchronization pass. It returns ENOTFOUND when no
// directory has been configured. Failures on individual files are counted in
// the result and reported through progress; they do not abort the run.
func (ix *Indexer) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	dir, err := ix.Settings.DirPath(ctx)
	if err != nil {
		return nil, err
	}

	if err := ix.checkModel(ctx); err != nil {
		return nil, err
	}

	found, err := ix.Finder.Find(dir)
	if err != nil {
		return nil, hermes.Errorf(hermes.EUNAVAILABLE, "scan %s: %v", dir, err)
	}

	indexed, err := ix.Files.FindFiles(ctx, hermes.FileFilter{})
	if err != nil {
		return nil, fmt.Errorf("load indexed files: %w", err)
	}

	jobs, deleted := ix.plan(found, indexed)
	result := &Result{Found: len(found), Deleted: len(deleted)}

	var stale []string
	stale = append(stale, deleted...)
	for _, j := range jobs {
		if j.modified {
			stale = append(stale, j.info.Path)
		}
	}
	if len(stale) > 0 {
		if err := ix.Files.DeleteFilesByPaths(ctx, stale); err != nil {
			return nil, fmt.Errorf("delete stale files: %w", err)
		}
	}

	if len(jobs) == 0 {
		return result, nil
	}

	if err := ix.process(ctx, jobs, result, progress); err != nil {
		return nil, err
	}
	return result, nil
}

// checkModel clears the index when the stored vectors were produced by a
// different embedding model, then records the current one.
func (ix *Indexer) checkModel(ctx context.Context) error {
	if ix.Models == nil {
		return nil
	}

	current := ix.Embedder.Model()
	stored, err := ix.Models.EmbeddingModel(ctx)
	if err != nil && hermes.ErrorCode(err) != hermes.ENOTFOUND {
		return err
	}
	if stored == current {
		return nil
	}

	if stored != "" {
		ix.logger().Info("embedding model changed, reindexing", "from", stored, "to", current)
		files, err := ix.Files.FindFiles(ctx, hermes.FileFilter{})
		if err != nil {
			return err
		}
		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
		if err := ix.Files.DeleteFilesByPaths(ctx, paths); err != nil {
			return err
		}
	}

	return ix.Models.SetEmbeddingModel(ctx, current)
}

// plan decides which files need indexing and which indexed paths are gone.
// A file present on both sides is modified when its size or mtime changed
// and its content hash differs from the stored one. Files recorded as failed
// follow the same rule, so they are retried only after they change.
func (ix *Indexer) plan(found []hermes.FileInfo, indexed []*hermes.File) ([]job, []string) {
	byPath := make(map[string]*hermes.File, len(indexed))
	prev := make([]string, 0, len(indexed))
	for _, f := range indexed {
		byPath[f.Path] = f
		prev = append(prev, f.Path)
	}
	infos := make(map[string]hermes.FileInfo, len(found))
	current := make([]string, 0, len(found))
	for _, info := range found {
		infos[info.Path] = info
		current = append(current, info.Path)
	}

	changes := hermes.TrackChanges(prev, current)

	var jobs []job
	for _, path := range changes.Added {
		jobs = append(jobs, job{info: infos[path]})
	}
	for _, info := range found {
		f, ok := byPath[info.Path]
		if !ok || (f.Size == info.Size && f.ModTime.Equal(info.ModTime)) {
			continue
		}
		hash, err := ix.Hasher.Hash(info.Path)
		if err == nil && hash == f.ContentHash {
			continue
		}
		jobs = append(jobs, job{info: info, hash: hash, modified: true})
	}

	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].info.Path < jobs[k].info.Path
	})
	return jobs, changes.Deleted
}

func (ix *Indexer) process(ctx context.Context, jobs []job, result *Result, progress ProgressFunc) error {
	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fileResult, len(jobs))
	var completed atomic.Int64
	total := len(jobs)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, j := range jobs {
			g.Go(func() error {
				resultCh <- ix.processFile(gctx, j)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Files are stored by the collector so writes stay serialized.
	for r := range resultCh {
		if r.err == nil {
			r.err = ix.save(ctx, r)
		}
		completed.Add(1)

		if r.err != nil {
			result.Failed++
			if ctx.Err() == nil {
				ix.recordFailure(ctx, r)
			}
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Path:      r.info.Path,
					Error:     r.err,
				})
			}
			continue
		}

		if r.modified {
			result.Modified++
		} else {
			result.Added++
		}
		result.Pages += r.pages
		result.Chunks += len(r.chunks)
		result.Bytes += r.info.Size

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Path:      r.info.Path,
				Chunks:    len(r.chunks),
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	}

	return ctx.Err()
}

// processFile extracts, normalizes, chunks and embeds one file.
func (ix *Indexer) processFile(ctx context.Context, j job) fileResult {
	r := fileResult{job: j}

	if r.hash == "" {
		hash, err := ix.Hasher.Hash(j.info.Path)
		if err != nil {
			r.err = fmt.Errorf("hash: %w", err)
			return r
		}
		r.hash = hash
	}

	pages, err := ix.Extractor.Extract(ctx, j.info.Path)
	if err != nil {
		r.err = fmt.Errorf("extract: %w", err)
		return r
	}
	r.pages = len(pages)

	chunker := ix.Chunker
	if chunker == nil {
		chunker = NewChunker(nil, ix.Embedder.MaxTokens())
	}

	for _, page := range pages {
		text := hermes.Normalize(page.Content)
		if text == "" {
			continue
		}
		pieces, err := chunker.Split(ctx, text)
		if err != nil {
			r.err = fmt.Errorf("chunk page %d: %w", page.Number, err)
			return r
		}
		for i, piece := range pieces {
			r.chunks = append(r.chunks, &hermes.Chunk{
				Path:     j.info.Path,
				Page:     page.Number,
				Position: i,
				Text:     piece,
			})
		}
	}

	if err := ix.embed(ctx, j.info.Path, r.chunks); err != nil {
		r.err = err
	}
	return r
}

// embed fills in chunk embeddings in batches, retrying failed batches.
func (ix *Indexer) embed(ctx context.Context, path string, chunks []*hermes.Chunk) error {
	batchSize := ix.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	delays := ix.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logger := ix.logger()

	for start := 0; start < len(chunks); start += batchSize {
		batch := chunks[start:min(start+batchSize, len(chunks))]
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := WithRetry(ctx, path, delays, func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}, func(ctx context.Context) ([][]float32, error) {
			return ix.Embedder.Embed(ctx, texts)
		})
		if err != nil {
			return fmt.Errorf("embed: %w", err)
		}
		if len(vectors) != len(batch) {
			return hermes.Errorf(hermes.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}
		for i, v := range vectors {
			batch[i].Embedding = v
		}
	}
	return nil
}

// save records the file and its chunks. A file whose chunks cannot be stored
// is removed again and recorded as failed by the caller.
func (ix *Indexer) save(ctx context.Context, r fileResult) error {
	file := &hermes.File{
		Path:        r.info.Path,
		ContentHash: r.hash,
		Size:        r.info.Size,
		ModTime:     r.info.ModTime,
		Pages:       r.pages,
		Chunks:      len(r.chunks),
	}
	if err := ix.Files.CreateFile(ctx, file); err != nil {
		return fmt.Errorf("save file: %w", err)
	}

	if len(r.chunks) == 0 {
		return nil
	}
	for _, c := range r.chunks {
		c.FileID = file.ID
	}
	if err := ix.Chunks.CreateChunks(ctx, r.chunks); err != nil {
		if derr := ix.Files.DeleteFile(ctx, file.ID); derr != nil {
			ix.logger().Error("remove partially indexed file", "path", file.Path, "error", derr)
		}
		return fmt.Errorf("save chunks: %w", err)
	}
	return nil
}

// recordFailure stores a failed file with its error so later runs skip it
// until its size, mtime or content changes.
func (ix *Indexer) recordFailure(ctx context.Context, r fileResult) {
	file := &hermes.File{
		Path:        r.info.Path,
		ContentHash: r.hash,
		Size:        r.info.Size,
		ModTime:     r.info.ModTime,
		Pages:       r.pages,
		Error:       r.err.Error(),
	}
	if err := ix.Files.CreateFile(ctx, file); err != nil {
		ix.logger().Error("record failed file", "path", file.Path, "error", err)
	}
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return slog.New(slog.DiscardHandler)
}
