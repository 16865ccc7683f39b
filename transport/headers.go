package transport

import (
	"maps"
	"net/http"
	"strings"
)

// Headers is an immutable set of header values keyed by lowercased name.
type Headers struct {
	values map[string]string
}

// NewHeaders builds Headers from a map with arbitrary name casing.
// When two names differ only in case, the last one iterated wins.
func NewHeaders(values map[string]string) Headers {
	h := Headers{values: make(map[string]string, len(values))}
	for name, value := range values {
		h.values[strings.ToLower(name)] = value
	}
	return h
}

// HeadersFromHTTP converts net/http headers, keeping the first value of each name.
func HeadersFromHTTP(header http.Header) Headers {
	h := Headers{values: make(map[string]string, len(header))}
	for name, values := range header {
		if len(values) > 0 {
			h.values[strings.ToLower(name)] = values[0]
		}
	}
	return h
}

// ByName returns the value for name using a case-insensitive lookup.
func (h Headers) ByName(name string) (string, bool) {
	v, ok := h.values[strings.ToLower(name)]
	return v, ok
}

// Get is ByName without the presence flag.
func (h Headers) Get(name string) string {
	v, _ := h.ByName(name)
	return v
}

// Len returns the number of headers.
func (h Headers) Len() int {
	return len(h.values)
}

// ToMap returns a lowercased snapshot that callers may modify freely.
func (h Headers) ToMap() map[string]string {
	out := make(map[string]string, len(h.values))
	maps.Copy(out, h.values)
	return out
}

// Merge returns new Headers containing h overlaid with other. Values in
// other win on conflict.
func (h Headers) Merge(other Headers) Headers {
	out := Headers{values: make(map[string]string, len(h.values)+len(other.values))}
	maps.Copy(out.values, h.values)
	maps.Copy(out.values, other.values)
	return out
}

// Equal reports whether both sets hold the same names and values.
func (h Headers) Equal(other Headers) bool {
	return maps.Equal(h.values, other.values)
}
