package ersdoc

import (
	"context"
	"time"
)

// Chunk is a bounded fragment of a document's text, the unit of
// retrieval. It carries all parent document metadata plus its own
// sequence data. Chunks are ordered within a document by ChunkIndex; the
// global order across documents is not meaningful.
type Chunk struct {
	ID             string    `json:"id,omitempty"`
	RunID          string    `json:"run_id,omitempty"`
	SourceURL      string    `json:"source_url"`
	Title          string    `json:"title"`
	Section        string    `json:"section"`
	DiscoveryDepth int       `json:"discovery_depth"`
	RetrievedAt    time.Time `json:"retrieved_at"`
	Content        string    `json:"content"`
	ChunkIndex     int       `json:"chunk_index"`
	ChunkSize      int       `json:"chunk_size"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// Metadata returns the chunk's metadata as the flat mapping a vector
// index ingests alongside the chunk text.
func (c *Chunk) Metadata() map[string]any {
	return map[string]any{
		"source_url":      c.SourceURL,
		"title":           c.Title,
		"section":         c.Section,
		"discovery_depth": c.DiscoveryDepth,
		"retrieved_at":    c.RetrievedAt.Format(time.RFC3339),
		"chunk_index":     c.ChunkIndex,
		"chunk_size":      c.ChunkSize,
		"processed_at":    c.ProcessedAt.Format(time.RFC3339),
	}
}

// Splitter splits documents into chunks.
type Splitter interface {
	Split(docs []*Document) ([]*Chunk, error)
}

// ChunkService persists and retrieves chunks.
type ChunkService interface {
	// CreateChunks stores a batch of chunks, assigning IDs as needed.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter, ordered by source
	// URL and chunk index.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// DeleteChunksByRun removes all chunks belonging to a run.
	DeleteChunksByRun(ctx context.Context, runID string) error
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	RunID     *string `json:"run_id"`
	Section   *string `json:"section"`
	SourceURL *string `json:"source_url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
