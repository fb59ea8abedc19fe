package main

import (
	"fmt"

	"github.com/taxdocs/ersdoc"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	run, err := deps.Pipeline.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ersdoc.ErrorMessage(err))
		return err
	}

	s := run.Summary
	fmt.Fprintf(deps.Stdout, "Run %s complete\n", run.ID)
	fmt.Fprintf(deps.Stdout, "  URLs discovered: %d (max depth %d, %s)\n",
		s.Discovery.TotalDiscoveredURLs, s.Discovery.MaxDepth, s.Discovery.Termination)
	fmt.Fprintf(deps.Stdout, "  Failures:        %d\n", s.Discovery.FailedURLs)
	fmt.Fprintf(deps.Stdout, "  Chunks:          %d (%d characters, avg %.0f)\n",
		s.TotalChunks, s.TotalCharacters, s.AverageChunkSize)
	fmt.Fprintf(deps.Stdout, "  Sections:        %d across %d pages\n",
		s.UniqueSections, s.SourceURLCount)
	fmt.Fprintf(deps.Stdout, "  Artifacts:       %s\n", run.Path)
	return nil
}
