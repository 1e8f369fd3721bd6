package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/hermes"
	"github.com/google/uuid"
)

// deleteBatchSize keeps IN lists below SQLite's host parameter limit.
const deleteBatchSize = 500

// Compile-time interface verification.
var _ hermes.FileService = (*FileService)(nil)

// FileService implements hermes.FileService using SQLite.
type FileService struct {
	db *DB
}

// NewFileService creates a new FileService.
func NewFileService(db *DB) *FileService {
	return &FileService{db: db}
}

// CreateFile records a newly indexed file.
func (s *FileService) CreateFile(ctx context.Context, file *hermes.File) error {
	if err := file.Validate(); err != nil {
		return err
	}

	if _, err := s.FindFileByPath(ctx, file.Path); err == nil {
		return hermes.Errorf(hermes.ECONFLICT, "file %q already indexed", file.Path)
	} else if hermes.ErrorCode(err) != hermes.ENOTFOUND {
		return err
	}

	file.ID = uuid.New().String()
	file.IndexedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, path, content_hash, size, mod_time, pages, chunks, indexed_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, file.ID, file.Path, file.ContentHash, file.Size, file.ModTime.UTC().Format(time.RFC3339Nano),
		file.Pages, file.Chunks, file.IndexedAt.Format(time.RFC3339), file.Error)

	return err
}

// FindFileByPath retrieves a file by its path.
func (s *FileService) FindFileByPath(ctx context.Context, path string) (*hermes.File, error) {
	files, err := s.FindFiles(ctx, hermes.FileFilter{Path: &path, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, hermes.Errorf(hermes.ENOTFOUND, "file %q not found", path)
	}
	return files[0], nil
}

// FindFiles retrieves files matching the filter, ordered by path.
func (s *FileService) FindFiles(ctx context.Context, filter hermes.FileFilter) ([]*hermes.File, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, path, content_hash, size, mod_time, pages, chunks, indexed_at, error FROM files WHERE 1=1")

	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}

	query.WriteString(" ORDER BY path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*hermes.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// DeleteFile permanently removes a file and its chunks.
func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return hermes.Errorf(hermes.ENOTFOUND, "file not found")
	}

	return nil
}

// DeleteFilesByPaths removes the files with the given paths and their chunks.
func (s *FileService) DeleteFilesByPaths(ctx context.Context, paths []string) error {
	for start := 0; start < len(paths); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(paths))
		batch := paths[start:end]

		args := make([]any, len(batch))
		for i, p := range batch {
			args[i] = p
		}

		query := "DELETE FROM files WHERE path IN (" + placeholders(len(batch)) + ")"
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func scanFile(rows *sql.Rows) (*hermes.File, error) {
	var file hermes.File
	var modTime, indexedAt string

	if err := rows.Scan(&file.ID, &file.Path, &file.ContentHash, &file.Size, &modTime,
		&file.Pages, &file.Chunks, &indexedAt, &file.Error); err != nil {
		return nil, err
	}

	var err error
	if file.ModTime, err = parseTime(modTime, time.RFC3339Nano, "mod_time"); err != nil {
		return nil, err
	}
	if file.IndexedAt, err = parseTime(indexedAt, time.RFC3339, "indexed_at"); err != nil {
		return nil, err
	}

	return &file, nil
}
