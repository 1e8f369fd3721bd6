package hermes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// SettingsService stores the service-wide configuration chosen at runtime.
type SettingsService interface {
	// DirPath returns the configured PDF directory.
	// Returns ENOTFOUND if no directory has been set.
	DirPath(ctx context.Context) (string, error)

	// SetDirPath replaces the configured PDF directory.
	SetDirPath(ctx context.Context, path string) error
}

// ModelSettings records which embedding model produced the stored vectors.
type ModelSettings interface {
	// EmbeddingModel returns the model name, or ENOTFOUND if never indexed.
	EmbeddingModel(ctx context.Context) (string, error)

	// SetEmbeddingModel records the model name.
	SetEmbeddingModel(ctx context.Context, model string) error
}

// CleanDirPath validates a user-supplied directory and returns its absolute,
// cleaned form. Returns EINVALID if the path is empty or is not an existing
// directory.
func CleanDirPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", Errorf(EINVALID, "directory path required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", Errorf(EINVALID, "invalid directory path %q", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", Errorf(EINVALID, "directory %q does not exist", abs)
	}
	if !info.IsDir() {
		return "", Errorf(EINVALID, "%q is not a directory", abs)
	}

	return abs, nil
}
