package ersdoc

import "time"

// DiscoveryStats describes the crawl that produced a run.
type DiscoveryStats struct {
	MaxDepth            int    `json:"max_depth"`
	MaxPages            int    `json:"max_pages"`
	TotalDiscoveredURLs int    `json:"total_discovered_urls"`
	FailedURLs          int    `json:"failed_urls"`
	Termination         string `json:"termination"`
}

// Summary is the derived aggregate over a completed run's chunk set. It
// is recomputed from the chunks, never maintained incrementally.
type Summary struct {
	TotalChunks         int            `json:"total_chunks"`
	TotalCharacters     int            `json:"total_characters"`
	AverageChunkSize    float64        `json:"average_chunk_size"`
	SourceURLCount      int            `json:"source_urls_count"`
	UniqueSections      int            `json:"unique_sections"`
	DepthDistribution   map[int]int    `json:"depth_distribution"`
	SectionDistribution map[string]int `json:"section_distribution"`
	Discovery           DiscoveryStats `json:"discovery_stats"`
	CreatedAt           time.Time      `json:"created_at"`
}

// BuildSummary derives a Summary from a run's chunk set and crawl stats.
func BuildSummary(chunks []*Chunk, stats DiscoveryStats) Summary {
	s := Summary{
		TotalChunks:         len(chunks),
		DepthDistribution:   make(map[int]int),
		SectionDistribution: make(map[string]int),
		Discovery:           stats,
		CreatedAt:           time.Now().UTC(),
	}

	urls := make(map[string]struct{})
	for _, c := range chunks {
		s.TotalCharacters += len(c.Content)
		s.DepthDistribution[c.DiscoveryDepth]++
		s.SectionDistribution[c.Section]++
		urls[c.SourceURL] = struct{}{}
	}

	if len(chunks) > 0 {
		s.AverageChunkSize = float64(s.TotalCharacters) / float64(len(chunks))
	}
	s.SourceURLCount = len(urls)
	s.UniqueSections = len(s.SectionDistribution)

	return s
}
