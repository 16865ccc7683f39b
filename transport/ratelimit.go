package transport

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited waits for a token before every request sent through next.
// It only delays dispatch; rejected requests are never retried.
type RateLimited struct {
	next    Transport
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a token bucket of rps requests per second
// and the given burst. A burst below 1 is treated as 1.
func NewRateLimited(rps float64, burst int, next Transport) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Send implements Transport.
func (r *RateLimited) Send(ctx context.Context, req *Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Send(ctx, req)
}
