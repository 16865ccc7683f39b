// Package transporttest provides deterministic Transport implementations
// for tests that must not touch the network.
package transporttest

import (
	"context"
	"errors"
	"sync"

	"github.com/journy-io/sdk-go/transport"
)

var (
	// ErrThrowing is the error returned by Throwing.
	ErrThrowing = errors.New("transporttest: throwing transport")

	// ErrNoResponse is wrapped by Match when it has no response to return.
	ErrNoResponse = errors.New("transporttest: no response configured")
)

// Fixed returns the same response for every request and remembers the
// last request it received.
type Fixed struct {
	mu       sync.Mutex
	response *transport.Response
	last     *transport.Request
}

// NewFixed creates a Fixed transport.
func NewFixed(response *transport.Response) *Fixed {
	return &Fixed{response: response}
}

// SetResponse replaces the response returned from now on.
func (f *Fixed) SetResponse(response *transport.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.response = response
}

// Send implements transport.Transport.
func (f *Fixed) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = req
	return f.response, nil
}

// LastRequest returns the most recent request, or nil.
func (f *Fixed) LastRequest() *transport.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Match behaves like Fixed for 2xx responses and otherwise fails with a
// *transport.RequestError carrying the response's status and headers.
// A nil response fails with a *transport.NoResponseError.
type Match struct {
	Fixed
}

// NewMatch creates a Match transport.
func NewMatch(response *transport.Response) *Match {
	return &Match{Fixed: Fixed{response: response}}
}

// Send implements transport.Transport.
func (m *Match) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	resp, _ := m.Fixed.Send(ctx, req)
	if resp == nil {
		return nil, &transport.NoResponseError{
			Method: req.Method(),
			URL:    req.URL().String(),
			Err:    ErrNoResponse,
		}
	}
	if resp.IsSuccess() {
		return resp, nil
	}
	return nil, &transport.RequestError{
		Message:    "errorMessage",
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// Throwing fails every request without a response.
type Throwing struct{}

// Send implements transport.Transport.
func (Throwing) Send(context.Context, *transport.Request) (*transport.Response, error) {
	return nil, ErrThrowing
}

// Recorder records every request in arrival order and answers with Handler.
// A nil Handler answers 200 with an empty body.
type Recorder struct {
	Handler func(ctx context.Context, req *transport.Request) (*transport.Response, error)

	mu       sync.Mutex
	requests []*transport.Request
}

// Send implements transport.Transport.
func (r *Recorder) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()

	if r.Handler == nil {
		return transport.NewResponse(200, transport.Headers{}, ""), nil
	}
	return r.Handler(ctx, req)
}

// Requests returns a copy of the recorded requests.
func (r *Recorder) Requests() []*transport.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*transport.Request, len(r.requests))
	copy(out, r.requests)
	return out
}
