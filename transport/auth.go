package transport

import "context"

// APIKeyHeader is the header carrying the API secret.
const APIKeyHeader = "x-api-key"

// APIKey adds the x-api-key header to every request before delegating.
type APIKey struct {
	next   Transport
	header Headers
}

// NewAPIKey wraps next with a static API key.
func NewAPIKey(key string, next Transport) *APIKey {
	return &APIKey{
		next:   next,
		header: NewHeaders(map[string]string{APIKeyHeader: key}),
	}
}

// Send implements Transport. The caller's request is left untouched.
func (a *APIKey) Send(ctx context.Context, req *Request) (*Response, error) {
	return a.next.Send(ctx, req.WithHeaders(a.header))
}
