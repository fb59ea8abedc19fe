package mock

import (
	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of ersdoc.Converter.
type Converter struct {
	ConvertFn func(contentHTML string) (string, error)
}

func (c *Converter) Convert(contentHTML string) (string, error) {
	return c.ConvertFn(contentHTML)
}
