package ersdoc

import (
	"context"
	"sort"
	"strings"
)

// Compile-time interface verification.
var _ Retriever = (*KeywordRetriever)(nil)

// KeywordRetriever is a term-frequency retriever over a chunk store. It
// stands in when no vector index is configured: chunks are scored by how
// often the question's terms occur in their content.
type KeywordRetriever struct {
	Chunks ChunkService

	// RunID restricts retrieval to one run; empty means all runs.
	RunID string
}

// Retrieve returns the k highest-scoring chunks for the query. Ties keep
// store order, so results are deterministic.
func (r *KeywordRetriever) Retrieve(ctx context.Context, query string, k int) ([]*Chunk, error) {
	filter := ChunkFilter{}
	if r.RunID != "" {
		runID := r.RunID
		filter.RunID = &runID
	}

	chunks, err := r.Chunks.FindChunks(ctx, filter)
	if err != nil {
		return nil, err
	}

	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, Errorf(EINVALID, "query contains no searchable terms")
	}

	type scored struct {
		chunk *Chunk
		score int
		order int
	}
	var matches []scored
	for i, c := range chunks {
		content := strings.ToLower(c.Content)
		score := 0
		for _, term := range terms {
			score += strings.Count(content, term)
		}
		if score > 0 {
			matches = append(matches, scored{chunk: c, score: score, order: i})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	result := make([]*Chunk, len(matches))
	for i, m := range matches {
		result[i] = m.chunk
	}
	return result, nil
}

// queryTerms lowercases and tokenizes a question, dropping short words
// that would match everywhere.
func queryTerms(query string) []string {
	var terms []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		field = strings.Trim(field, ".,;:!?\"'()")
		if len(field) > 2 {
			terms = append(terms, field)
		}
	}
	return terms
}
