package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taxdocs/ersdoc"
	"github.com/taxdocs/ersdoc/fs"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	entries, err := os.ReadDir(c.Dir)
	if os.IsNotExist(err) {
		fmt.Fprintf(deps.Stdout, "No runs found in %s. Use 'ersdoc crawl' to create one.\n", c.Dir)
		return nil
	}
	if err != nil {
		return err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "run_") {
			ids = append(ids, entry.Name())
		}
	}
	if len(ids) == 0 {
		fmt.Fprintf(deps.Stdout, "No runs found in %s. Use 'ersdoc crawl' to create one.\n", c.Dir)
		return nil
	}
	sort.Strings(ids)

	for _, id := range ids {
		summary, err := readSummary(filepath.Join(c.Dir, id, fs.SummaryFile))
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s  (unreadable summary: %s)\n", id, err)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %d chunks  %d pages  %d sections  %s\n",
			id, summary.TotalChunks, summary.SourceURLCount, summary.UniqueSections,
			summary.Discovery.Termination)
	}
	return nil
}

func readSummary(path string) (*ersdoc.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s ersdoc.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
