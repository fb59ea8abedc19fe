package mock

import (
	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of ersdoc.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(markup, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(markup, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(markup, baseURL)
}
