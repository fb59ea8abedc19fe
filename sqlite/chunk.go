package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taxdocs/ersdoc"
)

// Compile-time interface verification.
var _ ersdoc.ChunkService = (*ChunkService)(nil)

// ChunkService implements ersdoc.ChunkService using SQLite.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks stores a batch of chunks in one transaction, assigning
// IDs to chunks that lack one. All chunks in a batch must carry a run
// ID; the run row is created on first use.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*ersdoc.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.RunID == "" {
			return ersdoc.Errorf(ersdoc.EINVALID, "chunk run ID required")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	runs := make(map[string]struct{})
	for _, c := range chunks {
		if _, ok := runs[c.RunID]; !ok {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO runs (id, created_at) VALUES (?, ?)
			`, c.RunID, now); err != nil {
				return err
			}
			runs[c.RunID] = struct{}{}
		}

		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, run_id, source_url, title, section, discovery_depth, retrieved_at, content, chunk_index, chunk_size, processed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.RunID, c.SourceURL, c.Title, c.Section, c.DiscoveryDepth,
			c.RetrievedAt.UTC().Format(time.RFC3339), c.Content, c.ChunkIndex, c.ChunkSize,
			c.ProcessedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunks retrieves chunks matching the filter, ordered by source
// URL and chunk index.
func (s *ChunkService) FindChunks(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, source_url, title, section, discovery_depth, retrieved_at, content, chunk_index, chunk_size, processed_at FROM chunks WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Section != nil {
		query.WriteString(" AND section = ?")
		args = append(args, *filter.Section)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY source_url ASC, chunk_index ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite rejects OFFSET without LIMIT; -1 means no limit.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*ersdoc.Chunk
	for rows.Next() {
		var c ersdoc.Chunk
		var retrievedAt, processedAt string

		if err := rows.Scan(&c.ID, &c.RunID, &c.SourceURL, &c.Title, &c.Section, &c.DiscoveryDepth,
			&retrievedAt, &c.Content, &c.ChunkIndex, &c.ChunkSize, &processedAt); err != nil {
			return nil, err
		}

		c.RetrievedAt, err = time.Parse(time.RFC3339, retrievedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse retrieved_at: %w", err)
		}
		c.ProcessedAt, err = time.Parse(time.RFC3339, processedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse processed_at: %w", err)
		}

		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// DeleteChunksByRun removes all chunks belonging to a run, and the run
// row itself.
func (s *ChunkService) DeleteChunksByRun(ctx context.Context, runID string) error {
	if runID == "" {
		return ersdoc.Errorf(ersdoc.EINVALID, "run ID required")
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID)
	return err
}
