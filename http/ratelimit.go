package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/dhalloran/adorn"
	"golang.org/x/time/rate"
)

var _ adorn.Fetcher = (*ThrottledFetcher)(nil)

// ThrottledFetcher wraps a Fetcher with per-domain rate limiting using
// token buckets. Each domain gets a separate limiter with a burst of 1, so
// concurrent scrapes of different hosts proceed in parallel while requests
// to the same host are spaced out.
type ThrottledFetcher struct {
	next adorn.Fetcher

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewThrottledFetcher wraps next with a per-domain limit of rps requests
// per second.
func NewThrottledFetcher(next adorn.Fetcher, rps float64) *ThrottledFetcher {
	return &ThrottledFetcher{
		next:     next,
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Fetch waits for the domain's rate limit and delegates to the wrapped
// fetcher. Returns an error if the context is canceled before the wait
// completes.
func (f *ThrottledFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", adorn.Errorf(adorn.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	f.mu.Lock()
	limiter, ok := f.limiters[u.Hostname()]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.rps), 1)
		f.limiters[u.Hostname()] = limiter
	}
	f.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return "", err
	}

	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *ThrottledFetcher) Close() error {
	return f.next.Close()
}
