// Package fs provides file-based persistence for completed runs.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taxdocs/ersdoc"
)

// Artifact file names within a run directory.
const (
	ChunksFile     = "chunks.json"
	ReadableFile   = "chunks.md"
	SummaryFile    = "summary.json"
	DiscoveredFile = "discovered_urls.json"
	FailuresFile   = "failed_urls.json"
)

// Ensure Writer implements ersdoc.RunWriter at compile time.
var _ ersdoc.RunWriter = (*Writer)(nil)

// Writer persists runs with atomic update semantics. Artifacts are
// written to a temporary directory, then moved into place in one
// rename, so a crash mid-write never leaves a directory that looks like
// a complete run.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer that writes run directories under baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRun writes all of the run's artifacts and returns the final run
// directory. A run with no chunks is refused; an empty run directory
// would be indistinguishable from a failed one.
func (w *Writer) WriteRun(ctx context.Context, run *ersdoc.Run) (string, error) {
	if run.ID == "" {
		return "", ersdoc.Errorf(ersdoc.EINVALID, "run ID required")
	}
	if len(run.Chunks) == 0 {
		return "", ersdoc.Errorf(ersdoc.EINVALID, "refusing to write run with no chunks")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	finalDir := filepath.Join(w.baseDir, run.ID)
	tempDir := finalDir + ".tmp"

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", err
	}
	defer os.RemoveAll(tempDir)

	if err := w.writeAll(tempDir, run); err != nil {
		return "", err
	}

	if err := os.RemoveAll(finalDir); err != nil {
		return "", err
	}
	if err := os.Rename(tempDir, finalDir); err != nil {
		return "", err
	}
	return finalDir, nil
}

func (w *Writer) writeAll(dir string, run *ersdoc.Run) error {
	if err := writeJSON(filepath.Join(dir, ChunksFile), run.Chunks); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ReadableFile), []byte(FormatChunks(run.Chunks)), 0644); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, SummaryFile), run.Summary); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, DiscoveredFile), newDiscoveredArtifact(run)); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, FailuresFile), newFailuresArtifact(run))
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// FormatChunks renders the chunk set as one markdown document, each
// chunk under a YAML frontmatter block, for eyeballing a run's output.
func FormatChunks(chunks []*ersdoc.Chunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("---\n")
		fmt.Fprintf(&b, "source: %s\n", c.SourceURL)
		fmt.Fprintf(&b, "title: %s\n", c.Title)
		fmt.Fprintf(&b, "section: %s\n", c.Section)
		fmt.Fprintf(&b, "depth: %d\n", c.DiscoveryDepth)
		fmt.Fprintf(&b, "chunk: %d\n", c.ChunkIndex)
		b.WriteString("---\n\n")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// discoveredArtifact is the on-disk shape of the discovery graph.
type discoveredArtifact struct {
	DiscoveredAt time.Time           `json:"discovered_at"`
	TotalURLs    int                 `json:"total_urls"`
	URLsByDepth  map[string][]string `json:"urls_by_depth"`
	AllURLs      map[string]int      `json:"all_urls"`
}

func newDiscoveredArtifact(run *ersdoc.Run) discoveredArtifact {
	byDepth := make(map[string][]string)
	for url, depth := range run.Discovered {
		key := fmt.Sprintf("depth_%d", depth)
		byDepth[key] = append(byDepth[key], url)
	}
	for key := range byDepth {
		sort.Strings(byDepth[key])
	}
	return discoveredArtifact{
		DiscoveredAt: run.Summary.CreatedAt,
		TotalURLs:    len(run.Discovered),
		URLsByDepth:  byDepth,
		AllURLs:      run.Discovered,
	}
}

// failuresArtifact is the on-disk shape of the failure log.
type failuresArtifact struct {
	FailedAt    time.Time              `json:"failed_at"`
	FailedCount int                    `json:"failed_count"`
	FailedURLs  []ersdoc.FailureRecord `json:"failed_urls"`
}

func newFailuresArtifact(run *ersdoc.Run) failuresArtifact {
	failures := run.Failures
	if failures == nil {
		failures = []ersdoc.FailureRecord{}
	}
	return failuresArtifact{
		FailedAt:    run.Summary.CreatedAt,
		FailedCount: len(failures),
		FailedURLs:  failures,
	}
}
