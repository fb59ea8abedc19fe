package mock

import (
	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ersdoc.Extractor.
type Extractor struct {
	ExtractFn func(markup string) (*ersdoc.ExtractResult, error)
}

func (e *Extractor) Extract(markup string) (*ersdoc.ExtractResult, error) {
	return e.ExtractFn(markup)
}
