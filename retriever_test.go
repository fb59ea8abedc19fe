package ersdoc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdocs/ersdoc"
	"github.com/taxdocs/ersdoc/mock"
)

func TestKeywordRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	stored := []*ersdoc.Chunk{
		{SourceURL: "https://x/a", Content: "Restricted securities are subject to forfeiture provisions."},
		{SourceURL: "https://x/b", Content: "Securities options: grant of securities options to employees. Securities options are not chargeable on grant."},
		{SourceURL: "https://x/c", Content: "Capital gains treatment on disposal of shares."},
	}
	chunks := &mock.ChunkService{
		FindChunksFn: func(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
			assert.Nil(t, filter.RunID)
			return stored, nil
		},
	}
	r := &ersdoc.KeywordRetriever{Chunks: chunks}

	got, err := r.Retrieve(context.Background(), "securities options", 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "https://x/b", got[0].SourceURL)
	assert.Equal(t, "https://x/a", got[1].SourceURL)
}

func TestKeywordRetriever_Retrieve_FiltersByRun(t *testing.T) {
	t.Parallel()

	chunks := &mock.ChunkService{
		FindChunksFn: func(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
			require.NotNil(t, filter.RunID)
			assert.Equal(t, "run_20250601_120000", *filter.RunID)
			return nil, nil
		},
	}
	r := &ersdoc.KeywordRetriever{Chunks: chunks, RunID: "run_20250601_120000"}

	got, err := r.Retrieve(context.Background(), "securities", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKeywordRetriever_Retrieve_NoSearchableTerms(t *testing.T) {
	t.Parallel()

	chunks := &mock.ChunkService{
		FindChunksFn: func(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
			return nil, nil
		},
	}
	r := &ersdoc.KeywordRetriever{Chunks: chunks}

	_, err := r.Retrieve(context.Background(), "a an of", 5)
	require.Error(t, err)
	assert.Equal(t, ersdoc.EINVALID, ersdoc.ErrorCode(err))
}

func TestKeywordRetriever_Retrieve_TiesKeepStoreOrder(t *testing.T) {
	t.Parallel()

	stored := []*ersdoc.Chunk{
		{SourceURL: "https://x/first", Content: "securities"},
		{SourceURL: "https://x/second", Content: "securities"},
	}
	chunks := &mock.ChunkService{
		FindChunksFn: func(ctx context.Context, filter ersdoc.ChunkFilter) ([]*ersdoc.Chunk, error) {
			return stored, nil
		},
	}
	r := &ersdoc.KeywordRetriever{Chunks: chunks}

	got, err := r.Retrieve(context.Background(), "securities", 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "https://x/first", got[0].SourceURL)
	assert.Equal(t, "https://x/second", got[1].SourceURL)
}
