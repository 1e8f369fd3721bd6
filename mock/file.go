package mock

import (
	"context"

	"github.com/fwojciec/hermes"
)

var _ hermes.FileService = (*FileService)(nil)

// FileService is a mock implementation of hermes.FileService.
type FileService struct {
	CreateFileFn         func(ctx context.Context, file *hermes.File) error
	FindFileByPathFn     func(ctx context.Context, path string) (*hermes.File, error)
	FindFilesFn          func(ctx context.Context, filter hermes.FileFilter) ([]*hermes.File, error)
	DeleteFileFn         func(ctx context.Context, id string) error
	DeleteFilesByPathsFn func(ctx context.Context, paths []string) error
}

func (s *FileService) CreateFile(ctx context.Context, file *hermes.File) error {
	return s.CreateFileFn(ctx, file)
}

func (s *FileService) FindFileByPath(ctx context.Context, path string) (*hermes.File, error) {
	return s.FindFileByPathFn(ctx, path)
}

func (s *FileService) FindFiles(ctx context.Context, filter hermes.FileFilter) ([]*hermes.File, error) {
	return s.FindFilesFn(ctx, filter)
}

func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	return s.DeleteFileFn(ctx, id)
}

func (s *FileService) DeleteFilesByPaths(ctx context.Context, paths []string) error {
	return s.DeleteFilesByPathsFn(ctx, paths)
}

var _ hermes.Finder = (*Finder)(nil)

// Finder is a mock implementation of hermes.Finder.
type Finder struct {
	FindFn func(dir string) ([]hermes.FileInfo, error)
}

func (f *Finder) Find(dir string) ([]hermes.FileInfo, error) {
	return f.FindFn(dir)
}

var _ hermes.Hasher = (*Hasher)(nil)

// Hasher is a mock implementation of hermes.Hasher.
type Hasher struct {
	HashFn func(path string) (string, error)
}

func (h *Hasher) Hash(path string) (string, error) {
	return h.HashFn(path)
}
