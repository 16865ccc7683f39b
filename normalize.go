package journy

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/journy-io/sdk-go/transport"
)

const rateLimitHeader = "X-RateLimit-Remaining"

// envelope is the JSON body shape of every API response.
type envelope[T any] struct {
	Meta struct {
		RequestID string `json:"requestId"`
	} `json:"meta"`
	Data T `json:"data"`
}

// statusToErrorKind maps an HTTP status code to an ErrorKind.
func statusToErrorKind(status int) ErrorKind {
	switch status {
	case 400:
		return BadArgumentsError
	case 401:
		return UnauthorizedError
	case 403:
		return ForbiddenError
	case 404:
		return NotFoundError
	case 422:
		return UnprocessableError
	case 429:
		return TooManyRequests
	case 500:
		return ServerError
	default:
		return UnknownError
	}
}

// callsRemaining parses the rate limit header. A missing or malformed
// header yields nil.
func callsRemaining(h transport.Headers) *int {
	raw, ok := h.ByName(rateLimitHeader)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

// requestID extracts meta.requestId from a body, or "" when the body is not
// a JSON envelope.
func requestID(body string) string {
	var env envelope[json.RawMessage]
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ""
	}
	return env.Meta.RequestID
}

// normalize turns the outcome of a transport call into a Result. Failures
// arrive either as a *transport.RequestError or as a non-2xx Response;
// both are handled the same way. Any other error means no response was
// received.
func normalize(resp *transport.Response, err error) Result[Empty] {
	if failed, ok := asFailure[Empty](resp, err); ok {
		return failed
	}
	return Result[Empty]{
		Success:        true,
		RequestID:      requestID(resp.Body),
		CallsRemaining: callsRemaining(resp.Headers),
	}
}

// normalizeData is normalize for operations whose body carries a data
// field. An undecodable body on a 2xx response is an UnknownError.
func normalizeData[T any](resp *transport.Response, err error) Result[T] {
	if failed, ok := asFailure[T](resp, err); ok {
		return failed
	}

	remaining := callsRemaining(resp.Headers)
	var env envelope[T]
	if err := json.Unmarshal([]byte(resp.Body), &env); err != nil {
		return Result[T]{CallsRemaining: remaining, Error: UnknownError}
	}
	return Result[T]{
		Success:        true,
		RequestID:      env.Meta.RequestID,
		CallsRemaining: remaining,
		Data:           env.Data,
	}
}

func asFailure[T any](resp *transport.Response, err error) (Result[T], bool) {
	var reqErr *transport.RequestError
	switch {
	case errors.As(err, &reqErr):
		return Result[T]{
			RequestID:      requestID(reqErr.Body),
			CallsRemaining: callsRemaining(reqErr.Headers),
			Error:          statusToErrorKind(reqErr.StatusCode),
		}, true
	case err != nil, resp == nil:
		return Result[T]{Error: UnknownError}, true
	case !resp.IsSuccess():
		return Result[T]{
			RequestID:      requestID(resp.Body),
			CallsRemaining: callsRemaining(resp.Headers),
			Error:          statusToErrorKind(resp.StatusCode),
		}, true
	}
	return Result[T]{}, false
}
