package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds each request sent by HTTP.
const DefaultTimeout = 5 * time.Second

// StatusPolicy decides which received responses HTTP reports as errors.
type StatusPolicy int

const (
	// ReturnAllStatuses returns every received response, whatever its status.
	ReturnAllStatuses StatusPolicy = iota
	// FailOnStatus turns non-2xx responses into a *RequestError.
	FailOnStatus
)

// HTTP sends requests with a net/http client.
type HTTP struct {
	client  *http.Client
	timeout time.Duration
	policy  StatusPolicy
}

// HTTPOption configures HTTP.
type HTTPOption func(*HTTP)

// WithHTTPTimeout sets the absolute per-request timeout.
func WithHTTPTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.timeout = timeout
	}
}

// WithStatusPolicy sets how non-2xx responses are reported.
func WithStatusPolicy(policy StatusPolicy) HTTPOption {
	return func(h *HTTP) {
		h.policy = policy
	}
}

// WithClient sets the underlying net/http client.
func WithClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// NewHTTP creates an HTTP transport. Redirects are not followed.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send implements Transport.
func (h *HTTP) Send(ctx context.Context, req *Request) (*Response, error) {
	bodyReader, err := encodeBody(req.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method()), req.URL().String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, value := range req.Headers().ToMap() {
		httpReq.Header.Set(name, value)
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, &NoResponseError{Method: req.Method(), URL: req.URL().String(), Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NoResponseError{Method: req.Method(), URL: req.URL().String(), Err: err}
	}

	resp := NewResponse(httpResp.StatusCode, HeadersFromHTTP(httpResp.Header), string(data))
	if h.policy == FailOnStatus && !resp.IsSuccess() {
		return nil, NewRequestError(req, resp, httpResp.Status)
	}
	return resp, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		if b == "" {
			return nil, nil
		}
		return bytes.NewReader([]byte(b)), nil
	case []byte:
		if len(b) == 0 {
			return nil, nil
		}
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
