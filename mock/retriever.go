package mock

import (
	"context"

	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of ersdoc.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, k int) ([]*ersdoc.Chunk, error)
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]*ersdoc.Chunk, error) {
	return r.RetrieveFn(ctx, query, k)
}
