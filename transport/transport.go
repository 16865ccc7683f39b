// Package transport turns outbound API calls into plain request/response
// values and provides composable implementations of the Transport interface.
//
// A client builds a [Request], hands it to a chain of transports and gets a
// [Response] or an error back. The innermost link is usually [HTTP]; the
// others wrap it and add one behavior each:
//
//   - [APIKey] injects the x-api-key header.
//   - [Queue] dispatches requests one at a time in submission order.
//   - [RateLimited] throttles dispatch with a token bucket.
//   - [Logging] logs every call.
//   - [Instrumented] records Prometheus metrics.
//
// No transport in this package retries.
package transport

import "context"

// Transport executes a single request.
//
// Implementations return a *RequestError when a response was received but
// judged a failure, and an error matching ErrNoResponse when nothing came back.
// All implementations in this package are safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Send calls f(ctx, req).
func (f Func) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
