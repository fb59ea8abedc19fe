package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdocs/ersdoc/crawl"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100 * time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "www.gov.uk")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond)
	})

	t.Run("second request waits out the delay", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100 * time.Millisecond)

		err := limiter.Wait(context.Background(), "www.gov.uk")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "www.gov.uk")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Second)

		err := limiter.Wait(context.Background(), "www.gov.uk")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "assets.publishing.service.gov.uk")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled during wait", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Hour)

		err := limiter.Wait(context.Background(), "www.gov.uk")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "www.gov.uk")
		assert.Error(t, err)
	})

	t.Run("zero delay never blocks", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		for i := 0; i < 10; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "www.gov.uk"))
		}
	})
}
