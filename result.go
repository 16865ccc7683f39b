package journy

// Result is the outcome of an API call.
//
// When Success is true Data holds the decoded payload and Error is empty.
// Otherwise Error holds the normalized failure and Data is the zero value.
// CallsRemaining is nil when the API did not report a rate limit. A zero
// Data is left out of the JSON encoding.
type Result[T any] struct {
	Success        bool      `json:"success"`
	RequestID      string    `json:"requestId,omitempty"`
	CallsRemaining *int      `json:"callsRemaining,omitempty"`
	Data           T         `json:"data,omitzero"`
	Error          ErrorKind `json:"error,omitempty"`
}

// Empty is the payload of operations that return no data.
type Empty struct{}

// Remaining returns the number of API calls left in the current window.
func (r Result[T]) Remaining() (int, bool) {
	if r.CallsRemaining == nil {
		return 0, false
	}
	return *r.CallsRemaining, true
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	if r.Error == "" {
		return UnknownError
	}
	return r.Error
}

// APIKeyDetails describes the API key used by the client.
type APIKeyDetails struct {
	Permissions []string `json:"permissions"`
}

// TrackingSnippet is the embeddable tracking script for a domain.
type TrackingSnippet struct {
	Domain  string `json:"domain"`
	Snippet string `json:"snippet"`
}
