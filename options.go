package journy

import (
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/journy-io/sdk-go/transport"
)

// Version is reported in the user-agent header.
const Version = "1.0.0"

const (
	defaultBaseURL   = "https://api.journy.io"
	defaultTimeout   = transport.DefaultTimeout
	defaultUserAgent = "go-sdk/" + Version
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL        string
	timeout        time.Duration
	httpClient     *http.Client
	transport      transport.Transport
	logger         logrus.FieldLogger
	userAgent      string
	secretsAllowed bool

	// Optional decorators
	queueConcurrency int
	rateLimit        float64
	rateBurst        int
	registerer       prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL:        defaultBaseURL,
		timeout:        defaultTimeout,
		logger:         discardLogger(),
		userAgent:      defaultUserAgent,
		secretsAllowed: true,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout.
// Default: 5 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client for the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTransport replaces the HTTP transport. The API key, queue, rate limit
// and metrics decorators still wrap it.
func WithTransport(t transport.Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithLogger sets the logger. The client is silent by default.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the user-agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithQueue sends requests through a FIFO dispatch queue with the given
// concurrency. A concurrency of 1 means no two requests are ever in flight.
func WithQueue(concurrency int) Option {
	return func(c *clientConfig) {
		if concurrency < 1 {
			concurrency = 1
		}
		c.queueConcurrency = concurrency
	}
}

// WithRateLimit throttles outgoing requests to rps per second with the
// given burst. Throttled requests wait; nothing is retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = rps
		c.rateBurst = burst
	}
}

// WithMetrics records request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithSecretsAllowed declares whether the process may hold the API key.
// When false, New fails with ErrSecretsNotAllowed.
// Default: true
func WithSecretsAllowed(allowed bool) Option {
	return func(c *clientConfig) {
		c.secretsAllowed = allowed
	}
}
