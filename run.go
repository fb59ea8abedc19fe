package ersdoc

import (
	"context"
	"time"
)

// Run captures the durable output of one pipeline invocation: the chunk
// set, the discovery graph, the failure log and the derived summary, all
// tied together by a shared run identifier.
type Run struct {
	ID         string          `json:"id"`
	Chunks     []*Chunk        `json:"chunks"`
	Discovered map[string]int  `json:"discovered"`
	Failures   []FailureRecord `json:"failures"`
	Summary    Summary         `json:"summary"`

	// Path is where the run's artifacts were written, set by the writer.
	Path string `json:"-"`
}

// NewRunID derives a run identifier from a timestamp. All artifacts of a
// run share this identifier so its full lineage can be reconstructed
// from disk.
func NewRunID(t time.Time) string {
	return "run_" + t.Format("20060102_150405")
}

// RunWriter persists a completed run's artifacts. Implementations must
// be atomic: a failed write never leaves a partial run directory that
// could be mistaken for a complete one.
type RunWriter interface {
	// WriteRun writes all artifacts and returns the final location.
	WriteRun(ctx context.Context, run *Run) (path string, err error)
}
