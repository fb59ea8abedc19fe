package crawl

import (
	"sort"

	"github.com/taxdocs/ersdoc"
)

// DiscoveredURL pairs a normalized URL with the depth at which it was
// first discovered.
type DiscoveredURL struct {
	URL   string
	Depth int
}

// Session is the bookkeeping for one crawl: every URL discovered with
// the depth of its first discovery, the set of URLs already processed
// for links, and the append-only failure log. A Session is not safe for
// concurrent use; the crawl is single-threaded by design of the
// politeness policy.
type Session struct {
	maxPages  int
	order     []string
	depths    map[string]int
	processed map[string]struct{}
	failures  []ersdoc.FailureRecord
}

// NewSession creates a session seeded at depth zero. Seeds are
// normalized; duplicate seeds collapse to one entry. maxPages caps the
// total number of discovered URLs; zero or negative means no cap.
func NewSession(seeds []string, maxPages int) *Session {
	s := &Session{
		maxPages:  maxPages,
		depths:    make(map[string]int),
		processed: make(map[string]struct{}),
	}
	for _, seed := range seeds {
		s.Discover(seed, 0)
	}
	return s
}

// Discover records a URL at the given depth. The first discovery wins:
// a URL reachable by several paths keeps the depth of the shortest one.
// Returns false if the URL was already known or the session is full.
func (s *Session) Discover(rawURL string, depth int) bool {
	if s.Full() {
		return false
	}
	url := ersdoc.Normalize(rawURL)
	if _, ok := s.depths[url]; ok {
		return false
	}
	s.depths[url] = depth
	s.order = append(s.order, url)
	return true
}

// Depth returns the first-discovery depth of a URL.
func (s *Session) Depth(rawURL string) (int, bool) {
	depth, ok := s.depths[ersdoc.Normalize(rawURL)]
	return depth, ok
}

// Len returns the number of discovered URLs.
func (s *Session) Len() int {
	return len(s.order)
}

// Full reports whether the page cap has been reached.
func (s *Session) Full() bool {
	return s.maxPages > 0 && len(s.order) >= s.maxPages
}

// MarkProcessed records that a URL has been processed for links.
func (s *Session) MarkProcessed(url string) {
	s.processed[url] = struct{}{}
}

// Processed reports whether a URL has been processed for links.
func (s *Session) Processed(url string) bool {
	_, ok := s.processed[url]
	return ok
}

// PendingAt returns the URLs discovered at the given depth that have
// not been processed yet, in discovery order.
func (s *Session) PendingAt(depth int) []string {
	var pending []string
	for _, url := range s.order {
		if s.depths[url] != depth {
			continue
		}
		if s.Processed(url) {
			continue
		}
		pending = append(pending, url)
	}
	return pending
}

// RecordFailure appends a failure to the session log. Failures never
// abort the crawl; a URL that failed is simply absent from the output.
func (s *Session) RecordFailure(url string, err error, stage ersdoc.Stage, depth int) {
	s.failures = append(s.failures, ersdoc.FailureRecord{
		URL:   url,
		Err:   err.Error(),
		Stage: stage,
		Depth: depth,
	})
}

// Failures returns the failure log in the order failures occurred.
func (s *Session) Failures() []ersdoc.FailureRecord {
	return s.failures
}

// Discovered returns a copy of the URL-to-depth mapping.
func (s *Session) Discovered() map[string]int {
	m := make(map[string]int, len(s.depths))
	for url, depth := range s.depths {
		m[url] = depth
	}
	return m
}

// DiscoveredInOrder returns all discovered URLs with their depths, in
// discovery order.
func (s *Session) DiscoveredInOrder() []DiscoveredURL {
	urls := make([]DiscoveredURL, 0, len(s.order))
	for _, url := range s.order {
		urls = append(urls, DiscoveredURL{URL: url, Depth: s.depths[url]})
	}
	return urls
}

// URLsByDepth groups discovered URLs by depth, each group sorted for
// stable output.
func (s *Session) URLsByDepth() map[int][]string {
	m := make(map[int][]string)
	for url, depth := range s.depths {
		m[depth] = append(m[depth], url)
	}
	for depth := range m {
		sort.Strings(m[depth])
	}
	return m
}

// MaxDepth returns the deepest discovery depth seen, or zero for an
// empty session.
func (s *Session) MaxDepth() int {
	max := 0
	for _, depth := range s.depths {
		if depth > max {
			max = depth
		}
	}
	return max
}
