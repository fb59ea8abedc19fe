package mock

import (
	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of ersdoc.Splitter.
type Splitter struct {
	SplitFn func(docs []*ersdoc.Document) ([]*ersdoc.Chunk, error)
}

func (s *Splitter) Split(docs []*ersdoc.Document) ([]*ersdoc.Chunk, error) {
	return s.SplitFn(docs)
}
