package hermes

import (
	"context"
	"time"
)

// File represents an indexed PDF file.
type File struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modTime"`
	Pages       int       `json:"pages"`
	Chunks      int       `json:"chunks"`
	IndexedAt   time.Time `json:"indexedAt"`

	// Error is set when indexing failed; such a file has no chunks.
	Error string `json:"error,omitempty"`
}

// Validate returns an error if the file contains invalid fields.
func (f *File) Validate() error {
	if f.Path == "" {
		return Errorf(EINVALID, "file path required")
	}
	return nil
}

// FileInfo describes a PDF found on disk.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Finder discovers PDF files below a directory.
type Finder interface {
	// Find returns every PDF below dir, sorted by path.
	Find(dir string) ([]FileInfo, error)
}

// Hasher computes a content hash of a file on disk.
type Hasher interface {
	Hash(path string) (string, error)
}

// FileService represents a service for managing indexed files.
type FileService interface {
	// CreateFile records a newly indexed file.
	// Returns ECONFLICT if a file with the same path exists.
	CreateFile(ctx context.Context, file *File) error

	// FindFileByPath retrieves a file by its path.
	// Returns ENOTFOUND if the file does not exist.
	FindFileByPath(ctx context.Context, path string) (*File, error)

	// FindFiles retrieves files matching the filter, ordered by path.
	FindFiles(ctx context.Context, filter FileFilter) ([]*File, error)

	// DeleteFile permanently removes a file and all associated chunks.
	// Returns ENOTFOUND if the file does not exist.
	DeleteFile(ctx context.Context, id string) error

	// DeleteFilesByPaths removes the files with the given paths and their chunks.
	// Paths that are not indexed are ignored.
	DeleteFilesByPaths(ctx context.Context, paths []string) error
}

// FileFilter represents a filter for FindFiles.
type FileFilter struct {
	Path *string `json:"path"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
