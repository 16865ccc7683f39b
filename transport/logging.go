package transport

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// sensitiveParams are query parameter name fragments redacted from logged URLs.
var sensitiveParams = []string{
	"key",
	"token",
	"secret",
	"password",
	"auth",
	"credential",
}

// Logging logs every request sent through next.
type Logging struct {
	next Transport
	log  logrus.FieldLogger
}

// NewLogging wraps next. A nil logger disables logging.
func NewLogging(log logrus.FieldLogger, next Transport) *Logging {
	return &Logging{next: next, log: log}
}

// Send implements Transport.
func (l *Logging) Send(ctx context.Context, req *Request) (*Response, error) {
	if l.log == nil {
		return l.next.Send(ctx, req)
	}

	start := time.Now()
	resp, err := l.next.Send(ctx, req)

	entry := l.log.WithFields(logrus.Fields{
		"method":      req.Method(),
		"url":         sanitizeURL(req.URL()),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		entry.WithField("status", reqErr.StatusCode).Warn("http request rejected")
	case err != nil:
		entry.WithError(err).Warn("http request failed")
	case resp == nil:
		entry.Warn("http request returned no response")
	case !resp.IsSuccess():
		entry.WithField("status", resp.StatusCode).Warn("http request")
	default:
		entry.WithField("status", resp.StatusCode).Debug("http request")
	}

	return resp, err
}

// sanitizeURL replaces sensitive query parameter values with [REDACTED].
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.RawQuery == "" {
		return u.String()
	}

	q := u.Query()
	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, "[REDACTED]")
		}
	}

	safe := *u
	safe.RawQuery = q.Encode()
	return safe.String()
}

func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
