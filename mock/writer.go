package mock

import (
	"context"

	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.RunWriter = (*RunWriter)(nil)

// RunWriter is a mock implementation of ersdoc.RunWriter.
type RunWriter struct {
	WriteRunFn func(ctx context.Context, run *ersdoc.Run) (string, error)
}

func (w *RunWriter) WriteRun(ctx context.Context, run *ersdoc.Run) (string, error) {
	return w.WriteRunFn(ctx, run)
}
