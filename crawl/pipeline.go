package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taxdocs/ersdoc"
)

// Config holds the knobs of one pipeline run.
type Config struct {
	SeedURLs     []string
	MaxPages     int
	MaxDepth     int
	ChunkSize    int
	ChunkOverlap int
	OutputDir    string

	// DiscoveryDelay is the minimum delay between discovery fetches to
	// one domain; FetchDelay is the same for document loading. Discovery
	// is throttled harder because it touches every page the loader will
	// touch again.
	DiscoveryDelay time.Duration
	FetchDelay     time.Duration
}

// DefaultConfig returns the configuration used when no flags override it.
func DefaultConfig() Config {
	return Config{
		SeedURLs:       DefaultSeedURLs(),
		MaxPages:       50,
		MaxDepth:       -1,
		ChunkSize:      ersdoc.DefaultChunkSize,
		ChunkOverlap:   ersdoc.DefaultChunkOverlap,
		OutputDir:      "data",
		DiscoveryDelay: time.Second,
		FetchDelay:     500 * time.Millisecond,
	}
}

// DefaultSeedURLs returns the roots of the three manual subtrees the
// pipeline ingests by default.
func DefaultSeedURLs() []string {
	return []string{
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000",
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm20000",
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm30000",
	}
}

// Pipeline runs one full ingestion: discover, load, split, persist. The
// run either completes with all artifacts written or fails without
// leaving a partial run behind; which of the two happened is never
// ambiguous.
type Pipeline struct {
	Crawler  *Crawler
	Loader   *Loader
	Splitter ersdoc.Splitter
	Writer   ersdoc.RunWriter

	// Chunks, when set, additionally persists the chunk set to a store
	// queryable by the ask command.
	Chunks ersdoc.ChunkService

	Seeds    []string
	MaxPages int

	Logger *slog.Logger

	// Now stamps the run identifier; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Run executes the pipeline and returns the completed run. Individual
// page failures are recorded in the run's failure log; Run itself fails
// only on context cancellation, a stage-level error, or when no
// document at all could be loaded.
func (p *Pipeline) Run(ctx context.Context) (*ersdoc.Run, error) {
	logger := p.logger()
	session := NewSession(p.Seeds, p.MaxPages)

	termination, err := p.Crawler.Discover(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	logger.Info("discovery complete", "urls", session.Len(), "max_depth", session.MaxDepth(), "termination", termination)

	docs, err := p.Loader.LoadDocuments(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(docs) == 0 {
		return nil, ersdoc.Errorf(ersdoc.ENOTFOUND, "no documents loaded from %d discovered URLs", session.Len())
	}
	logger.Info("documents loaded", "documents", len(docs), "failures", len(session.Failures()))

	chunks, err := p.Splitter.Split(docs)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	runID := ersdoc.NewRunID(p.now().UTC())
	for _, c := range chunks {
		c.RunID = runID
	}

	stats := ersdoc.DiscoveryStats{
		MaxDepth:            session.MaxDepth(),
		MaxPages:            p.MaxPages,
		TotalDiscoveredURLs: session.Len(),
		FailedURLs:          len(session.Failures()),
		Termination:         termination,
	}
	run := &ersdoc.Run{
		ID:         runID,
		Chunks:     chunks,
		Discovered: session.Discovered(),
		Failures:   session.Failures(),
		Summary:    ersdoc.BuildSummary(chunks, stats),
	}

	if p.Chunks != nil {
		if err := p.Chunks.CreateChunks(ctx, chunks); err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
	}

	path, err := p.Writer.WriteRun(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	run.Path = path

	logger.Info("run complete", "run_id", runID, "chunks", len(chunks), "path", path)
	return run, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
