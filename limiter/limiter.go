// Package limiter throttles outbound Discogs API calls to a fixed quota per
// wall-clock window. Discogs allows 60 authenticated requests per minute; we
// never exceed that and never error, only wait.
package limiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// New returns a Limiter permitting n calls per window. A fresh limiter allows
// up to n calls immediately; after that, callers are delayed so the rolling
// rate stays at n per window.
func New(n int, window time.Duration) *Limiter {
	interval := window / time.Duration(n)
	return &Limiter{
		rl: rate.NewLimiter(rate.Every(interval), n),
	}
}

type Limiter struct {
	rl *rate.Limiter
}

// Wait blocks until a token is available or ctx is done. It is safe for
// concurrent callers sharing one instance.
func (lim *Limiter) Wait(ctx context.Context) error {
	return lim.rl.Wait(ctx)
}
