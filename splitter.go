package ersdoc

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Default chunking parameters, tuned for retrieval over manual pages.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// splitSeparators are tried most-semantic first: paragraph breaks, then
// line breaks, then word boundaries. A raw character cut is the final
// fallback.
var splitSeparators = []string{"\n\n", "\n", " "}

// Compile-time interface verification.
var _ Splitter = (*RecursiveSplitter)(nil)

// RecursiveSplitter splits document text into segments of at most
// ChunkSize characters, cutting on the most semantic separator available
// within each window. Consecutive segments overlap by exactly
// ChunkOverlap characters, so a document's text is reconstructed by
// concatenating its chunks with the overlap trimmed from every chunk
// after the first.
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewRecursiveSplitter returns a splitter with the given chunk size and
// overlap. The overlap must be smaller than the chunk size.
func NewRecursiveSplitter(size, overlap int) (*RecursiveSplitter, error) {
	s := &RecursiveSplitter{ChunkSize: size, ChunkOverlap: overlap}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RecursiveSplitter) validate() error {
	if s.ChunkSize <= 0 {
		return Errorf(EINVALID, "chunk size must be positive, got %d", s.ChunkSize)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return Errorf(EINVALID, "chunk overlap %d must be in [0, %d)", s.ChunkOverlap, s.ChunkSize)
	}
	return nil
}

// Split splits each document into chunks carrying the parent metadata
// plus a zero-based per-document index, the chunk length, and a
// processing timestamp. A misconfigured splitter is a fatal error, not a
// per-document failure.
func (s *RecursiveSplitter) Split(docs []*Document) ([]*Chunk, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var chunks []*Chunk
	for _, doc := range docs {
		for i, piece := range s.splitText(doc.Content) {
			chunks = append(chunks, &Chunk{
				SourceURL:      doc.SourceURL,
				Title:          doc.Title,
				Section:        doc.Section,
				DiscoveryDepth: doc.DiscoveryDepth,
				RetrievedAt:    doc.RetrievedAt,
				Content:        piece,
				ChunkIndex:     i,
				ChunkSize:      len(piece),
				ProcessedAt:    now,
			})
		}
	}
	return chunks, nil
}

// splitText cuts text into segments of at most ChunkSize characters.
// Every segment after the first begins exactly ChunkOverlap characters
// before the previous segment's end.
func (s *RecursiveSplitter) splitText(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var out []string
	start := 0
	for {
		end := start + s.ChunkSize
		if end >= len(text) {
			out = append(out, text[start:])
			return out
		}
		end = s.cutPoint(text, start, end)
		out = append(out, text[start:end])
		start = end - s.ChunkOverlap
	}
}

// cutPoint picks where to end the segment starting at start, given the
// hard size limit. Separators are tried most-semantic first, keeping the
// separator with the earlier segment. A cut at or below the floor would
// stall the walk, so such separators are skipped; if none qualifies the
// segment is cut at the limit on a rune boundary.
func (s *RecursiveSplitter) cutPoint(text string, start, limit int) int {
	floor := start + s.ChunkOverlap + 1

	for _, sep := range splitSeparators {
		idx := strings.LastIndex(text[start:limit], sep)
		if idx < 0 {
			continue
		}
		end := start + idx + len(sep)
		if end >= floor {
			return end
		}
	}

	end := limit
	for end > floor && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
