package mock

import (
	"context"

	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of ersdoc.ChunkService.
type ChunkService struct {
	CreateChunksFn      func(ctx context.Context, chunks []*ersdoc.Chunk) error
	FindChunksFn        func(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error)
	DeleteChunksByRunFn func(ctx context.Context, runID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*ersdoc.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksByRun(ctx context.Context, runID string) error {
	return s.DeleteChunksByRunFn(ctx, runID)
}
