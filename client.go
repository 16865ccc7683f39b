package journy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/journy-io/sdk-go/transport"
)

// Client calls the journy.io API.
//
// Every operation returns a Result. The error return is only non-nil when
// an argument is rejected before a request is built; network and API
// failures are reported through the Result.
type Client struct {
	baseURL   *url.URL
	headers   transport.Headers
	transport transport.Transport
	queue     *transport.Queue
	log       logrus.FieldLogger
}

// New creates a client for the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.secretsAllowed {
		return nil, ErrSecretsNotAllowed
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL, err := parseBaseURL(cfg.baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: baseURL,
		headers: transport.NewHeaders(map[string]string{
			"content-type": "application/json",
			"user-agent":   cfg.userAgent,
		}),
		log: cfg.logger,
	}
	if c.transport, err = c.buildTransport(apiKey, cfg); err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"base_url": baseURL.String(),
		"key":      KeyFingerprint(apiKey),
	}).Debug("journy client created")

	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// buildTransport assembles the decorator chain, outermost first:
// logging, API key, queue, rate limit, metrics, then the HTTP transport.
func (c *Client) buildTransport(apiKey string, cfg *clientConfig) (transport.Transport, error) {
	next := cfg.transport
	if next == nil {
		next = transport.NewHTTP(
			transport.WithHTTPTimeout(cfg.timeout),
			transport.WithClient(cfg.httpClient),
		)
	}

	if cfg.registerer != nil {
		metrics, err := transport.NewMetrics(cfg.registerer)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		next = transport.NewInstrumented(metrics, next)
	}
	if cfg.rateLimit > 0 {
		next = transport.NewRateLimited(cfg.rateLimit, cfg.rateBurst, next)
	}
	if cfg.queueConcurrency > 0 {
		c.queue = transport.NewQueue(next, cfg.queueConcurrency)
		next = c.queue
	}
	next = transport.NewAPIKey(apiKey, next)
	return transport.NewLogging(cfg.logger, next), nil
}

// Close drains the dispatch queue, if one was configured with WithQueue.
func (c *Client) Close(ctx context.Context) error {
	if c.queue == nil {
		return nil
	}
	return c.queue.Close(ctx)
}

// send builds a request for path relative to the base URL. A non-nil body
// is JSON-encoded.
func (c *Client) send(ctx context.Context, method transport.Method, path string, query url.Values, body any) (*transport.Response, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload any
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = string(encoded)
	}

	req, err := transport.NewRequest(u, method, c.headers, payload)
	if err != nil {
		return nil, err
	}
	return c.transport.Send(ctx, req)
}

// GetAPIKeyDetails returns the permissions of the API key.
func (c *Client) GetAPIKeyDetails(ctx context.Context) (Result[APIKeyDetails], error) {
	resp, err := c.send(ctx, transport.MethodGet, "/validate", nil, nil)
	return normalizeData[APIKeyDetails](resp, err), nil
}

// GetTrackingSnippet returns the tracking snippet for a website domain.
func (c *Client) GetTrackingSnippet(ctx context.Context, domain string) (Result[TrackingSnippet], error) {
	if strings.TrimSpace(domain) == "" {
		return Result[TrackingSnippet]{}, invalid("domain", "domain cannot be empty")
	}

	resp, err := c.send(ctx, transport.MethodGet, "/tracking/snippet", url.Values{"domain": {domain}}, nil)
	result := normalizeData[TrackingSnippet](resp, err)
	if result.Success {
		result.Data.Domain = domain
	}
	return result, nil
}

type eventIdentification struct {
	User    *UserIdentified    `json:"user,omitempty"`
	Account *AccountIdentified `json:"account,omitempty"`
}

type eventPayload struct {
	Identification eventIdentification `json:"identification"`
	Name           string              `json:"name"`
	TriggeredAt    string              `json:"triggeredAt,omitempty"`
	Metadata       map[string]any      `json:"metadata,omitempty"`
}

func buildEventPayload(event Event) (*eventPayload, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	metadata, err := stringify("metadata", event.metadata)
	if err != nil {
		return nil, err
	}

	p := &eventPayload{
		Identification: eventIdentification{User: event.user, Account: event.account},
		Name:           event.name,
		Metadata:       metadata,
	}
	if !event.triggeredAt.IsZero() {
		p.TriggeredAt = formatTimestamp(event.triggeredAt)
	}
	return p, nil
}

// AddEvent records an event for a user, an account or a user within an account.
func (c *Client) AddEvent(ctx context.Context, event Event) (Result[Empty], error) {
	payload, err := buildEventPayload(event)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/track", nil, payload)), nil
}

// LinkArgs links an anonymous device to a user.
type LinkArgs struct {
	DeviceID string
	User     UserIdentified
}

type linkPayload struct {
	DeviceID       string         `json:"deviceId"`
	Identification UserIdentified `json:"identification"`
}

func buildLinkPayload(args LinkArgs) (*linkPayload, error) {
	if strings.TrimSpace(args.DeviceID) == "" {
		return nil, invalid("deviceId", "device ID cannot be empty")
	}
	if err := args.User.Validate(); err != nil {
		return nil, err
	}
	return &linkPayload{DeviceID: args.DeviceID, Identification: args.User}, nil
}

// Link connects the device ID of a website visitor to a known user.
func (c *Client) Link(ctx context.Context, args LinkArgs) (Result[Empty], error) {
	payload, err := buildLinkPayload(args)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/link", nil, payload)), nil
}
