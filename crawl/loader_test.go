package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdocs/ersdoc"
	"github.com/taxdocs/ersdoc/crawl"
	"github.com/taxdocs/ersdoc/mock"
)

func TestLoader_LoadDocuments(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &crawl.Loader{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(markup string) (*ersdoc.ExtractResult, error) {
				return &ersdoc.ExtractResult{ContentHTML: markup}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(contentHTML string) (string, error) {
				return "Securities options and convertible securities\n\nBody text.\n", nil
			},
		},
		Now: func() time.Time { return now },
	}

	session := crawl.NewSession([]string{
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000",
	}, 50)
	session.Discover("https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110500", 1)

	docs, err := l.LoadDocuments(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	first := docs[0]
	assert.Equal(t, "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000", first.SourceURL)
	assert.Equal(t, "Securities options and convertible securities", first.Title)
	assert.Equal(t, "ersm110000", first.Section)
	assert.Equal(t, "Securities options and convertible securities\n\nBody text.", first.Content, "content must be trimmed")
	assert.NotEmpty(t, first.ContentHash)
	assert.Equal(t, 0, first.DiscoveryDepth)
	assert.Equal(t, now, first.RetrievedAt)

	second := docs[1]
	assert.Equal(t, "ersm110500", second.Section)
	assert.Equal(t, 1, second.DiscoveryDepth)
	assert.Equal(t, first.ContentHash, second.ContentHash, "identical content must hash identically")
	assert.Empty(t, session.Failures())
}

func TestLoader_LoadDocuments_fetch_failure_is_recorded(t *testing.T) {
	t.Parallel()

	l := &crawl.Loader{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/broken") {
					return "", errors.New("HTTP 404")
				}
				return "<html></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(markup string) (*ersdoc.ExtractResult, error) {
				return &ersdoc.ExtractResult{ContentHTML: markup}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(contentHTML string) (string, error) {
				return "Some extracted manual page content here.", nil
			},
		},
	}

	session := crawl.NewSession([]string{"https://x/ok"}, 50)
	session.Discover("https://x/broken", 1)

	docs, err := l.LoadDocuments(context.Background(), session)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "https://x/ok", docs[0].SourceURL)

	require.Len(t, session.Failures(), 1)
	failure := session.Failures()[0]
	assert.Equal(t, "https://x/broken", failure.URL)
	assert.Equal(t, ersdoc.StageDocumentLoading, failure.Stage)
	assert.Equal(t, 1, failure.Depth)
}

func TestLoader_LoadDocuments_empty_content_is_a_failure(t *testing.T) {
	t.Parallel()

	l := &crawl.Loader{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(markup string) (*ersdoc.ExtractResult, error) {
				return &ersdoc.ExtractResult{ContentHTML: ""}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(contentHTML string) (string, error) {
				return "   \n\t  ", nil
			},
		},
	}

	session := crawl.NewSession([]string{"https://x/empty"}, 50)

	docs, err := l.LoadDocuments(context.Background(), session)
	require.NoError(t, err)

	assert.Empty(t, docs)
	require.Len(t, session.Failures(), 1)
	assert.Equal(t, ersdoc.StageDocumentLoading, session.Failures()[0].Stage)
	assert.Contains(t, session.Failures()[0].Err, "no content extracted")
}

func TestLoader_LoadDocuments_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	l := &crawl.Loader{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", nil
			},
		},
	}
	session := crawl.NewSession([]string{"https://x/a"}, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LoadDocuments(ctx, session)
	assert.ErrorIs(t, err, context.Canceled)
}
