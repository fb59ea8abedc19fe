package ersdoc

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL to its deduplication key. Query
// parameters are dropped unconditionally (they never distinguish manual
// content) and navigational fragments are stripped; content-bearing
// fragments are preserved. Two URLs that normalize to the same string are
// the same discovery-graph node.
//
// Normalize is idempotent and total: input that does not parse is
// returned unchanged.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.RawQuery = ""
	u.ForceQuery = false

	if navAnchors[strings.ToLower(u.Fragment)] {
		u.Fragment = ""
		u.RawFragment = ""
	}

	return u.String()
}
