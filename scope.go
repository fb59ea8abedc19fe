package ersdoc

import (
	"net/url"
	"path"
	"strings"
)

// navAnchors are fragment identifiers that point at page chrome rather
// than content. A link that differs from its page only by one of these
// anchors is not a distinct document.
var navAnchors = map[string]bool{
	"content":      true,
	"main-content": true,
	"top":          true,
}

// binaryExtensions are resource types the pipeline never ingests.
var binaryExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
}

// Scope decides whether a URL belongs to the target manual subtree.
// The zero value matches nothing; use DefaultScope for the ERSM manual.
type Scope struct {
	// Host must appear in the URL's host, e.g. "gov.uk".
	Host string

	// ManualRoot must appear in the URL's path, e.g. "/hmrc-internal-manuals/".
	ManualRoot string

	// PathPrefixes is the manual subtree allow-list: at least one entry
	// must appear in the lowercased path.
	PathPrefixes []string
}

// DefaultScope returns the scope for the HMRC Employment-Related
// Securities Manual plus the adjacent manuals its pages reference.
func DefaultScope() Scope {
	return Scope{
		Host:       "gov.uk",
		ManualRoot: "/hmrc-internal-manuals/",
		PathPrefixes: []string{
			"/employment-related-securities/",
			"/ersm",
			"/capital-gains-manual/",
			"/income-tax-manual/",
			"/share-schemes",
			"/emi-",
			"/csop",
			"/saye",
		},
	}
}

// InScope reports whether rawURL is a content-bearing page of the manual
// subtree. It is total over any string: input that does not parse is
// simply out of scope.
func (s Scope) InScope(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.Contains(strings.ToLower(u.Host), strings.ToLower(s.Host)) {
		return false
	}

	lowerPath := strings.ToLower(u.Path)
	if !strings.Contains(lowerPath, s.ManualRoot) {
		return false
	}

	matched := false
	for _, prefix := range s.PathPrefixes {
		if strings.Contains(lowerPath, prefix) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	if binaryExtensions[strings.ToLower(path.Ext(u.Path))] {
		return false
	}

	// Skip-links like "#main-content" resolve to a page the crawler
	// already knows about; they carry no content of their own.
	if navAnchors[strings.ToLower(u.Fragment)] {
		return false
	}

	return true
}
