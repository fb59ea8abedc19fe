package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/taxdocs/ersdoc"
)

// Loader turns discovered URLs into documents: fetch, extract the main
// content, convert to markdown, derive metadata. It runs after
// discovery so the two phases can use different politeness delays.
type Loader struct {
	Fetcher   ersdoc.Fetcher
	Extractor ersdoc.Extractor
	Converter ersdoc.Converter
	Limiter   ersdoc.RateLimiter

	Logger *slog.Logger

	// Now stamps documents; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// LoadDocuments loads every URL the session discovered, in discovery
// order. Per-URL failures are recorded on the session and skipped; a
// page that yields no content after extraction is a failure, not an
// empty document. Only context cancellation aborts the pass.
func (l *Loader) LoadDocuments(ctx context.Context, session *Session) ([]*ersdoc.Document, error) {
	var docs []*ersdoc.Document
	for _, d := range session.DiscoveredInOrder() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := l.wait(ctx, d.URL); err != nil {
			return nil, err
		}

		doc, err := l.loadOne(ctx, d.URL, d.Depth)
		if err != nil {
			l.logger().Warn("document load failed", "url", d.URL, "depth", d.Depth, "error", err)
			session.RecordFailure(d.URL, err, ersdoc.StageDocumentLoading, d.Depth)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) loadOne(ctx context.Context, pageURL string, depth int) (*ersdoc.Document, error) {
	markup, err := l.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	extracted, err := l.Extractor.Extract(markup)
	if err != nil {
		return nil, err
	}

	content, err := l.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ersdoc.Errorf(ersdoc.EINVALID, "no content extracted")
	}

	return &ersdoc.Document{
		SourceURL:      pageURL,
		Title:          ersdoc.TitleFromContent(content),
		Section:        ersdoc.SectionFromURL(pageURL),
		Content:        content,
		ContentHash:    contentHash(content),
		DiscoveryDepth: depth,
		RetrievedAt:    l.now().UTC(),
	}, nil
}

func (l *Loader) wait(ctx context.Context, rawURL string) error {
	if l.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return l.Limiter.Wait(ctx, u.Host)
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// contentHash computes a hash of the content using xxhash.
func contentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
