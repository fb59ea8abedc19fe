package ersdoc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdocs/ersdoc"
)

func TestNewRecursiveSplitter_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{name: "zero size", size: 0, overlap: 0},
		{name: "negative size", size: -1, overlap: 0},
		{name: "negative overlap", size: 100, overlap: -1},
		{name: "overlap equals size", size: 100, overlap: 100},
		{name: "overlap exceeds size", size: 100, overlap: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ersdoc.NewRecursiveSplitter(tt.size, tt.overlap)
			require.Error(t, err)
			assert.Equal(t, ersdoc.EINVALID, ersdoc.ErrorCode(err))
		})
	}
}

func TestRecursiveSplitter_Split_SingleChunk(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(1000, 200)
	require.NoError(t, err)

	chunks, err := s.Split([]*ersdoc.Document{{
		SourceURL: "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000",
		Content:   "short page content",
	}})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short page content", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, len("short page content"), chunks[0].ChunkSize)
}

func TestRecursiveSplitter_Split_ChunkCountAndOverlap(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(1000, 200)
	require.NoError(t, err)

	// 2500 characters without separators forces raw cuts at exactly the
	// size limit: [0:1000], [800:1800], [1600:2500].
	text := strings.Repeat("a1", 1250)
	chunks, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: text}})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.LessOrEqual(t, c.ChunkSize, 1000)
		assert.Equal(t, i, c.ChunkIndex)
	}
	assert.Equal(t, chunks[0].Content[len(chunks[0].Content)-200:], chunks[1].Content[:200])
	assert.Equal(t, chunks[1].Content[len(chunks[1].Content)-200:], chunks[2].Content[:200])
}

func TestRecursiveSplitter_Split_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(50, 10)
	require.NoError(t, err)

	text := "Securities acquired for less than market value give rise to a notional loan.\n\n" +
		"The notional loan is treated as employment income when it is written off.\n" +
		"Interest on the notional loan is charged at the official rate each year."

	chunks, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: text}})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	var b strings.Builder
	b.WriteString(chunks[0].Content)
	for _, c := range chunks[1:] {
		b.WriteString(c.Content[10:])
	}
	assert.Equal(t, text, b.String())
}

func TestRecursiveSplitter_Split_CutsOnSeparators(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(20, 0)
	require.NoError(t, err)

	chunks, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: "hello world foo barbaz"}})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "hello world foo ", chunks[0].Content)
	assert.Equal(t, "barbaz", chunks[1].Content)
}

func TestRecursiveSplitter_Split_PrefersParagraphBreaks(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(20, 5)
	require.NoError(t, err)

	text := "aaaa aaaaa\n\n" + strings.Repeat("b", 20)
	chunks, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: text}})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, "aaaa aaaaa\n\n", chunks[0].Content)
}

func TestRecursiveSplitter_Split_InheritsDocumentMetadata(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(30, 5)
	require.NoError(t, err)

	retrieved := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := &ersdoc.Document{
		SourceURL:      "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm20000",
		Title:          "Share schemes",
		Section:        "ersm20000",
		Content:        strings.Repeat("words and more words ", 5),
		DiscoveryDepth: 2,
		RetrievedAt:    retrieved,
	}

	chunks, err := s.Split([]*ersdoc.Document{doc})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, doc.SourceURL, c.SourceURL)
		assert.Equal(t, doc.Title, c.Title)
		assert.Equal(t, doc.Section, c.Section)
		assert.Equal(t, doc.DiscoveryDepth, c.DiscoveryDepth)
		assert.Equal(t, retrieved, c.RetrievedAt)
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, len(c.Content), c.ChunkSize)
		assert.False(t, c.ProcessedAt.IsZero())
	}
}

func TestRecursiveSplitter_Split_EmptyDocument(t *testing.T) {
	t.Parallel()

	s, err := ersdoc.NewRecursiveSplitter(1000, 200)
	require.NoError(t, err)

	chunks, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: ""}})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRecursiveSplitter_Split_RejectsMisconfiguredSplitter(t *testing.T) {
	t.Parallel()

	s := &ersdoc.RecursiveSplitter{ChunkSize: 100, ChunkOverlap: 100}

	_, err := s.Split([]*ersdoc.Document{{SourceURL: "https://x/y", Content: "text"}})
	require.Error(t, err)
	assert.Equal(t, ersdoc.EINVALID, ersdoc.ErrorCode(err))
}
