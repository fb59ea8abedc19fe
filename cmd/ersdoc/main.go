package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/taxdocs/ersdoc"
	"github.com/taxdocs/ersdoc/crawl"
	"github.com/taxdocs/ersdoc/fs"
	"github.com/taxdocs/ersdoc/gemini"
	"github.com/taxdocs/ersdoc/goquery"
	"github.com/taxdocs/ersdoc/htmltomarkdown"
	ersdochttp "github.com/taxdocs/ersdoc/http"
	ersdocslog "github.com/taxdocs/ersdoc/slog"
	"github.com/taxdocs/ersdoc/sqlite"
	"github.com/taxdocs/ersdoc/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the chunk store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ersdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ersdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// The runs command only reads artifact directories.
	if cmd == "crawl" || cmd == "ask" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ERSDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Chunks = sqlite.NewChunkService(m.DB)
	}

	if cmd == "crawl" {
		deps.Pipeline, err = buildPipeline(cli.Crawl, deps)
		if err != nil {
			return err
		}
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		retriever := &ersdoc.KeywordRetriever{Chunks: deps.Chunks, RunID: cli.Ask.RunID}
		deps.Asker = gemini.NewAsker(client, retriever, gemini.WithTopK(cli.Ask.TopK))
	}

	return kongCtx.Run(deps)
}

// buildPipeline wires the full ingestion pipeline from the crawl
// command's flags.
func buildPipeline(cmd CrawlCmd, deps *Dependencies) (*crawl.Pipeline, error) {
	cfg := crawl.DefaultConfig()
	if len(cmd.Seeds) > 0 {
		cfg.SeedURLs = cmd.Seeds
	}
	cfg.MaxPages = cmd.MaxPages
	cfg.MaxDepth = cmd.MaxDepth
	cfg.ChunkSize = cmd.ChunkSize
	cfg.ChunkOverlap = cmd.ChunkOverlap
	cfg.OutputDir = cmd.OutputDir
	if cmd.DiscoveryDelay > 0 {
		cfg.DiscoveryDelay = cmd.DiscoveryDelay
	}
	if cmd.FetchDelay > 0 {
		cfg.FetchDelay = cmd.FetchDelay
	}

	splitter, err := ersdoc.NewRecursiveSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	fetcher := ersdocslog.NewLoggingFetcher(ersdochttp.NewFetcher(), deps.Logger)

	pipeline := &crawl.Pipeline{
		Crawler: &crawl.Crawler{
			Fetcher:  fetcher,
			Links:    goquery.NewLinkExtractor(ersdoc.DefaultScope()),
			Limiter:  crawl.NewDomainLimiter(cfg.DiscoveryDelay),
			MaxDepth: cfg.MaxDepth,
			Logger:   deps.Logger,
		},
		Loader: &crawl.Loader{
			Fetcher:   fetcher,
			Extractor: trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Limiter:   crawl.NewDomainLimiter(cfg.FetchDelay),
			Logger:    deps.Logger,
		},
		Splitter: splitter,
		Writer:   fs.NewWriter(cfg.OutputDir),
		Chunks:   deps.Chunks,
		Seeds:    cfg.SeedURLs,
		MaxPages: cfg.MaxPages,
		Logger:   deps.Logger,
	}
	return pipeline, nil
}

func defaultDBPath() string {
	if path := os.Getenv("ERSDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ersdoc.db"
	}
	dir := filepath.Join(home, ".ersdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ersdoc.db")
}
