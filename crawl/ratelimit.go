package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/taxdocs/ersdoc"
	"golang.org/x/time/rate"
)

var _ ersdoc.RateLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum delay between requests to the same
// domain using token buckets. Each domain gets its own limiter with a
// burst of 1, so the first request is immediate and every subsequent
// one waits out the full delay.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	minDelay time.Duration
}

// NewDomainLimiter creates a DomainLimiter with the given minimum delay
// between requests to one domain.
func NewDomainLimiter(minDelay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		minDelay: minDelay,
	}
}

// Wait blocks until the domain's limiter allows a request. Returns an
// error only if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.minDelay), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
