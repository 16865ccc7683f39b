package transport

import (
	"errors"
	"fmt"
)

// ErrNoResponse is matched by failures where no response was received
// (DNS, connect, timeout).
var ErrNoResponse = errors.New("no response received")

// ErrClosed is returned when work is submitted to a closed queue.
var ErrClosed = errors.New("transport closed")

// RequestError is returned when a response was received but the transport's
// status policy judged it a failure.
type RequestError struct {
	Message    string
	StatusCode int
	Headers    Headers
	Body       string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NewRequestError builds a RequestError the way HTTP formats it.
func NewRequestError(req *Request, resp *Response, cause string) *RequestError {
	return &RequestError{
		Message: fmt.Sprintf("%s HTTP request to %s failed: %s -> %q",
			req.Method(), req.URL(), cause, resp.Body),
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// NoResponseError wraps a failure where nothing came back from the server.
type NoResponseError struct {
	Method Method
	URL    string
	Err    error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("%s HTTP request to %s failed: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NoResponseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *NoResponseError) Is(target error) bool {
	return target == ErrNoResponse
}
