package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/taxdocs/ersdoc"
	"github.com/taxdocs/ersdoc/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Chunks   ersdoc.ChunkService
	Pipeline *crawl.Pipeline
	Asker    ersdoc.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl CrawlCmd `cmd:"" help:"Crawl the manual and persist a chunked run"`
	Ask   AskCmd   `cmd:"" help:"Ask a question about the ingested manual"`
	Runs  RunsCmd  `cmd:"" help:"List persisted runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds          []string      `short:"s" help:"Seed URLs (defaults to the ERSM manual roots)"`
	MaxPages       int           `default:"50" help:"Maximum number of discovered URLs"`
	MaxDepth       int           `default:"-1" help:"Maximum link depth (-1 for unlimited)"`
	ChunkSize      int           `default:"1000" help:"Target chunk size in characters"`
	ChunkOverlap   int           `default:"200" help:"Overlap between consecutive chunks"`
	OutputDir      string        `short:"o" default:"data" help:"Directory for run artifacts"`
	DiscoveryDelay time.Duration `default:"1s" help:"Delay between discovery requests per domain"`
	FetchDelay     time.Duration `default:"500ms" help:"Delay between document fetches per domain"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the manual"`
	RunID    string `name:"run" help:"Restrict retrieval to one run ID"`
	TopK     int    `default:"5" help:"Number of chunks to retrieve as context"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Dir string `short:"o" default:"data" help:"Directory containing run artifacts"`
}
