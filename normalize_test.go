package journy

import (
	"errors"
	"testing"

	"github.com/journy-io/sdk-go/transport"
)

func TestStatusToErrorKind(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{400, BadArgumentsError},
		{401, UnauthorizedError},
		{403, ForbiddenError},
		{404, NotFoundError},
		{422, UnprocessableError},
		{429, TooManyRequests},
		{500, ServerError},
		{0, UnknownError},
		{302, UnknownError},
		{409, UnknownError},
		{502, UnknownError},
		{503, UnknownError},
	}

	for _, tt := range tests {
		if got := statusToErrorKind(tt.status); got != tt.want {
			t.Errorf("statusToErrorKind(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestNormalize_FailureForEveryNonSuccessStatus(t *testing.T) {
	for status := 100; status < 600; status++ {
		if transport.IsSuccessStatus(status) {
			continue
		}
		result := normalize(transport.NewResponse(status, transport.Headers{}, ""), nil)
		if result.Success {
			t.Errorf("status %d: Success = true, want false", status)
		}
		if result.Error != statusToErrorKind(status) {
			t.Errorf("status %d: Error = %s, want %s", status, result.Error, statusToErrorKind(status))
		}
	}
}

func TestNormalize_SuccessRange(t *testing.T) {
	for status := 200; status <= 299; status++ {
		result := normalizeData[TrackingSnippet](transport.NewResponse(status, transport.Headers{},
			`{"meta":{"requestId":"id"},"data":{"snippet":"s"}}`), nil)
		if !result.Success {
			t.Fatalf("status %d: Success = false, error = %s", status, result.Error)
		}
		if result.Data.Snippet != "s" {
			t.Errorf("status %d: Snippet = %q, want s", status, result.Data.Snippet)
		}
		if result.Error != "" {
			t.Errorf("status %d: Error = %s, want empty", status, result.Error)
		}
	}
}

func TestNormalize_UnparseableBodyWithoutData(t *testing.T) {
	result := normalize(transport.NewResponse(204, transport.Headers{}, ""), nil)
	if !result.Success {
		t.Errorf("Success = false, want true")
	}
	if result.RequestID != "" {
		t.Errorf("RequestID = %q, want empty", result.RequestID)
	}
}

func TestNormalize_RequestError(t *testing.T) {
	err := &transport.RequestError{
		Message:    "rejected",
		StatusCode: 404,
		Headers:    transport.NewHeaders(map[string]string{"x-ratelimit-remaining": "12"}),
		Body:       `{"meta":{"requestId":"r"}}`,
	}
	result := normalize(nil, err)
	if result.Error != NotFoundError {
		t.Errorf("Error = %s, want %s", result.Error, NotFoundError)
	}
	if result.RequestID != "r" {
		t.Errorf("RequestID = %q, want r", result.RequestID)
	}
	expectRemaining(t, result, 12)
}

func TestNormalize_NoResponse(t *testing.T) {
	err := &transport.NoResponseError{Method: transport.MethodGet, URL: "https://api.test.com", Err: errors.New("refused")}

	result := normalizeData[APIKeyDetails](nil, err)
	if result.Success || result.Error != UnknownError {
		t.Errorf("result = %+v, want UnknownError failure", result)
	}
	if result.CallsRemaining != nil {
		t.Errorf("CallsRemaining = %d, want nil", *result.CallsRemaining)
	}
}

func TestCallsRemaining(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    *int
	}{
		{"absent", nil, nil},
		{"mixed case", map[string]string{"X-RateLimit-Remaining": "5000"}, intPtr(5000)},
		{"lower case", map[string]string{"x-ratelimit-remaining": "0"}, intPtr(0)},
		{"padded", map[string]string{"X-RATELIMIT-REMAINING": " 7 "}, intPtr(7)},
		{"malformed", map[string]string{"X-RateLimit-Remaining": "lots"}, nil},
		{"empty", map[string]string{"X-RateLimit-Remaining": ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := callsRemaining(transport.NewHeaders(tt.headers))
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("callsRemaining() = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("callsRemaining() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
