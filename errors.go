package journy

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned by New when the API key is empty.
	ErrMissingAPIKey = errors.New("the API key cannot be empty")

	// ErrInvalidBaseURL is returned by New when the API URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("the API url is not a valid URL")

	// ErrSecretsNotAllowed is returned by New when the environment must not hold the API key.
	ErrSecretsNotAllowed = errors.New("this environment is not allowed to hold the API key")

	// ErrInvalidArgument is matched by every ValidationError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrClosed is returned when work is submitted to a closed Tracker.
	ErrClosed = errors.New("tracker has been closed")
)

// ErrorKind is the normalized category of a failed API call.
// It implements error so a failed Result can be matched with errors.Is.
type ErrorKind string

// Error kinds, mapped from HTTP status codes.
const (
	ServerError        ErrorKind = "ServerError"
	UnauthorizedError  ErrorKind = "UnauthorizedError"
	BadArgumentsError  ErrorKind = "BadArgumentsError"
	TooManyRequests    ErrorKind = "TooManyRequests"
	NotFoundError      ErrorKind = "NotFoundError"
	ForbiddenError     ErrorKind = "ForbiddenError"
	UnprocessableError ErrorKind = "UnprocessableError"
	UnknownError       ErrorKind = "UnknownError"
)

func (k ErrorKind) Error() string {
	return string(k)
}

// ValidationError reports an argument rejected before any request was built.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
