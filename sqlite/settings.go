package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/hermes"
)

// Settings keys.
const (
	keyDirPath        = "dir_path"
	keyEmbeddingModel = "embedding_model"
)

// Compile-time interface verification.
var (
	_ hermes.SettingsService = (*SettingsService)(nil)
	_ hermes.ModelSettings   = (*SettingsService)(nil)
)

// SettingsService implements hermes.SettingsService using a key/value table.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// DirPath returns the configured PDF directory.
func (s *SettingsService) DirPath(ctx context.Context) (string, error) {
	value, err := s.get(ctx, keyDirPath)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", hermes.Errorf(hermes.ENOTFOUND, "directory path not set")
	}
	return value, nil
}

// SetDirPath replaces the configured PDF directory.
func (s *SettingsService) SetDirPath(ctx context.Context, path string) error {
	if path == "" {
		return hermes.Errorf(hermes.EINVALID, "directory path required")
	}
	return s.set(ctx, keyDirPath, path)
}

// EmbeddingModel returns the model that produced the stored vectors.
func (s *SettingsService) EmbeddingModel(ctx context.Context) (string, error) {
	value, err := s.get(ctx, keyEmbeddingModel)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", hermes.Errorf(hermes.ENOTFOUND, "embedding model not set")
	}
	return value, nil
}

// SetEmbeddingModel records the model that produced the stored vectors.
func (s *SettingsService) SetEmbeddingModel(ctx context.Context, model string) error {
	if model == "" {
		return hermes.Errorf(hermes.EINVALID, "embedding model required")
	}
	return s.set(ctx, keyEmbeddingModel, model)
}

func (s *SettingsService) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SettingsService) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
