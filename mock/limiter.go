package mock

import (
	"context"

	"github.com/taxdocs/ersdoc"
)

var _ ersdoc.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of ersdoc.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *RateLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
