// Package goquery implements link extraction from HTML markup.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/taxdocs/ersdoc"
)

// Compile-time interface verification.
var _ ersdoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts in-scope links from manual pages. Every anchor
// is considered; the scope filter decides what survives. Results are
// normalized, deduplicated, and kept in document order.
type LinkExtractor struct {
	scope ersdoc.Scope
}

// NewLinkExtractor creates a LinkExtractor restricted to the given scope.
func NewLinkExtractor(scope ersdoc.Scope) *LinkExtractor {
	return &LinkExtractor{scope: scope}
}

// ExtractLinks parses the markup and returns the normalized in-scope
// links, in document order with duplicates removed. Relative hrefs are
// resolved against baseURL.
func (e *LinkExtractor) ExtractLinks(markup, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ersdoc.Errorf(ersdoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, ersdoc.Errorf(ersdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		if !e.scope.InScope(resolved) {
			return
		}

		normalized := ersdoc.Normalize(resolved)
		if _, ok := seen[normalized]; ok {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	})

	return links, nil
}

// isNonHTTPLink reports whether the href uses a scheme that cannot be
// crawled.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "ftp:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
