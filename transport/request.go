package transport

import (
	"fmt"
	"net/url"
	"reflect"
)

// Method is an HTTP method accepted by the API.
type Method string

// Supported methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

// Request is an immutable outbound request. Decorators that need to change
// it build a new Request with the With* helpers.
type Request struct {
	url     *url.URL
	method  Method
	headers Headers
	body    any
}

// NewRequest creates a request for an absolute URL. An empty method means GET.
// Body may be a string, a []byte or any JSON-serializable value; nil means no body.
func NewRequest(u *url.URL, method Method, headers Headers, body any) (*Request, error) {
	if u == nil || !u.IsAbs() {
		return nil, fmt.Errorf("request URL must be absolute: %v", u)
	}
	if method == "" {
		method = MethodGet
	}
	switch method {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead:
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	copied := *u
	return &Request{url: &copied, method: method, headers: headers, body: body}, nil
}

// URL returns a copy of the target URL.
func (r *Request) URL() *url.URL {
	u := *r.url
	return &u
}

// Method returns the request method.
func (r *Request) Method() Method {
	return r.method
}

// Headers returns the request headers.
func (r *Request) Headers() Headers {
	return r.headers
}

// Body returns the opaque request payload.
func (r *Request) Body() any {
	return r.body
}

// WithHeaders returns a copy of r whose headers are r's merged with extra.
// Headers in extra win on conflict; r is not modified.
func (r *Request) WithHeaders(extra Headers) *Request {
	out := *r
	out.headers = r.headers.Merge(extra)
	return &out
}

// Equal reports whether two requests target the same URL with the same
// method, headers and body.
func (r *Request) Equal(other *Request) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.url.String() == other.url.String() &&
		r.method == other.method &&
		r.headers.Equal(other.headers) &&
		reflect.DeepEqual(r.body, other.body)
}

// Response is an immutable inbound response.
type Response struct {
	StatusCode int
	Headers    Headers
	Body       string
}

// NewResponse creates a response. A zero status code means 200.
func NewResponse(statusCode int, headers Headers, body string) *Response {
	if statusCode == 0 {
		statusCode = 200
	}
	return &Response{StatusCode: statusCode, Headers: headers, Body: body}
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return IsSuccessStatus(r.StatusCode)
}

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
