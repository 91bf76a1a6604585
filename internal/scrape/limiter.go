package scrape

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter rate-limits initial navigations per hostname. Companies
// often share a hosted ATS domain, and the worker pool must not land on
// it all at once.
type hostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func newHostLimiter(reqPerSec float64, burst int) *hostLimiter {
	return &hostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (hl *hostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[host] = lim
	return lim
}

func (hl *hostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}
