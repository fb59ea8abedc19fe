// Package crawl orchestrates the ingestion pipeline: breadth-first URL
// discovery over the manual, polite document loading, chunking, and run
// persistence.
package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/taxdocs/ersdoc"
)

// hardDepthCeiling bounds the level walk regardless of configuration.
// The manual's link graph is shallow; reaching this depth means the
// scope filter has sprung a leak.
const hardDepthCeiling = 50

// Termination reasons reported by Discover.
const (
	TerminationPageCap           = "page_cap"
	TerminationFrontierExhausted = "frontier_exhausted"
	TerminationDepthLimit        = "depth_limit"
	TerminationDepthCeiling      = "depth_ceiling"
)

// Crawler walks the manual's link graph breadth-first, one level at a
// time. It only discovers URLs; document loading is a separate pass so
// every page is fetched at most twice and failures in one phase never
// mask the other.
type Crawler struct {
	Fetcher ersdoc.Fetcher
	Links   ersdoc.LinkExtractor
	Limiter ersdoc.RateLimiter

	// MaxDepth is the last level whose pages are processed for links.
	// Negative means no configured limit; the hard ceiling still applies.
	MaxDepth int

	Logger *slog.Logger
}

// Discover walks the session's frontier level by level until the page
// cap is hit, a depth limit is reached, or a level yields no pending
// URLs. It returns the termination reason. Fetch and parse failures are
// recorded on the session and never abort the walk; only context
// cancellation does.
func (c *Crawler) Discover(ctx context.Context, session *Session) (string, error) {
	for depth := 0; ; depth++ {
		if session.Full() {
			return TerminationPageCap, nil
		}
		if c.MaxDepth >= 0 && depth > c.MaxDepth {
			return TerminationDepthLimit, nil
		}
		if depth >= hardDepthCeiling {
			return TerminationDepthCeiling, nil
		}

		pending := session.PendingAt(depth)
		if len(pending) == 0 {
			return TerminationFrontierExhausted, nil
		}

		for _, pageURL := range pending {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			if session.Full() {
				return TerminationPageCap, nil
			}

			if err := c.wait(ctx, pageURL); err != nil {
				return "", err
			}

			markup, err := c.Fetcher.Fetch(ctx, pageURL)
			if err != nil {
				c.logger().Warn("discovery fetch failed", "url", pageURL, "depth", depth, "error", err)
				session.RecordFailure(pageURL, err, ersdoc.StageLinkDiscovery, depth)
				session.MarkProcessed(pageURL)
				continue
			}

			links, err := c.Links.ExtractLinks(markup, pageURL)
			if err != nil {
				c.logger().Warn("link extraction failed", "url", pageURL, "depth", depth, "error", err)
				session.RecordFailure(pageURL, err, ersdoc.StageLinkDiscovery, depth)
				session.MarkProcessed(pageURL)
				continue
			}
			session.MarkProcessed(pageURL)

			for _, link := range links {
				if session.Full() {
					break
				}
				session.Discover(link, depth+1)
			}
		}

		c.logger().Debug("level complete", "depth", depth, "processed", len(pending), "discovered", session.Len())
	}
}

// wait applies the politeness delay for the URL's host. Unparseable
// URLs skip the wait and fail at fetch time instead.
func (c *Crawler) wait(ctx context.Context, rawURL string) error {
	if c.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return c.Limiter.Wait(ctx, u.Host)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
