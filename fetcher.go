package ersdoc

import "context"

// Fetcher retrieves raw page markup from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url. The context bounds the request;
	// transport failures and non-success statuses are returned as errors.
	Fetch(ctx context.Context, url string) (markup string, err error)
}

// RateLimiter enforces the politeness floor between successive fetches.
// The limit is a fixed minimum delay, not an adaptive backoff policy.
type RateLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled while waiting.
	Wait(ctx context.Context, domain string) error
}
