package sqlite

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/hermes"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hermes.ChunkService = (*ChunkService)(nil)

// ChunkService implements hermes.ChunkService using SQLite.
// Vectors are stored as blobs and searched exhaustively.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a single transaction.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*hermes.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, file_id, path, page, position, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		c.ID = uuid.New().String()
		if _, err := stmt.ExecContext(ctx, c.ID, c.FileID, c.Path, c.Page, c.Position, c.Text,
			encodeEmbedding(c.Embedding)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunks retrieves chunks matching the filter.
func (s *ChunkService) FindChunks(ctx context.Context, filter hermes.ChunkFilter) ([]*hermes.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, file_id, path, page, position, text, embedding FROM chunks WHERE 1=1")

	if filter.FileID != nil {
		query.WriteString(" AND file_id = ?")
		args = append(args, *filter.FileID)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.Page != nil {
		query.WriteString(" AND page = ?")
		args = append(args, *filter.Page)
	}

	query.WriteString(" ORDER BY path ASC, page ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*hermes.Chunk
	for rows.Next() {
		var c hermes.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.FileID, &c.Path, &c.Page, &c.Position, &c.Text, &blob); err != nil {
			return nil, err
		}
		if c.Embedding, err = decodeEmbedding(blob); err != nil {
			return nil, err
		}
		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// CountChunks returns the total number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// DeleteChunksByFile removes all chunks for a file.
func (s *ChunkService) DeleteChunksByFile(ctx context.Context, fileID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE file_id = ?", fileID)
	return err
}

// NearestChunks returns up to limit chunks closest to embedding by L2 distance.
// Rows whose vector length differs from the query are skipped.
func (s *ChunkService) NearestChunks(ctx context.Context, embedding []float32, limit int) ([]*hermes.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, hermes.Errorf(hermes.EINVALID, "query embedding required")
	}
	if limit <= 0 {
		limit = hermes.DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, "SELECT path, page, text, embedding FROM chunks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// best holds at most limit results sorted by ascending distance.
	best := make([]*hermes.SearchResult, 0, limit)
	for rows.Next() {
		var r hermes.SearchResult
		var blob []byte
		if err := rows.Scan(&r.Path, &r.Page, &r.Text, &blob); err != nil {
			return nil, err
		}
		if len(blob) != 4*len(embedding) {
			continue
		}
		vec, err := decodeEmbedding(blob)
		if err != nil {
			return nil, err
		}

		d := l2Distance(embedding, vec)
		if len(best) == limit && d >= *best[len(best)-1].Distance {
			continue
		}
		r.Distance = &d

		i := sort.Search(len(best), func(i int) bool { return *best[i].Distance > d })
		if len(best) < limit {
			best = append(best, nil)
		}
		copy(best[i+1:], best[i:len(best)-1])
		best[i] = &r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return best, nil
}
