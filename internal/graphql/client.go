package graphql

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"time"

	"github.com/go-resty/resty/v2"

	seclog "github.com/nao1215/careermap/internal/log"
)

// DefaultTimeout is the default timeout of one API request.
const DefaultTimeout = 60 * time.Second

// Client sends the payload template to a GraphQL endpoint.
type Client struct {
	client   *resty.Client
	endpoint string
	template Payload
	headers  map[string]string
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHeaders sets headers sent with every request (authorization, cookies).
// They are never logged in clear.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.headers, headers)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.SetTimeout(d)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRestyClient replaces the underlying resty client.
func WithRestyClient(rc *resty.Client) Option {
	return func(c *Client) {
		c.client = rc
	}
}

// NewClient creates a Client posting template to endpoint.
func NewClient(endpoint string, template Payload, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if template == nil {
		return nil, ErrInvalidPayload
	}

	c := &Client{
		client:   resty.New().SetTimeout(DefaultTimeout),
		endpoint: endpoint,
		template: template,
		headers:  make(map[string]string),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Query posts the template with variables.aliases set to aliases and
// returns the raw JSON response body.
func (c *Client) Query(ctx context.Context, aliases []string) (json.RawMessage, error) {
	payload := c.template.WithAliases(aliases)

	c.logger.Debug("api request",
		"url", c.endpoint,
		"operation", payload.OperationName(),
		"aliases", len(aliases),
		"headers", seclog.SanitizeHeaders(c.headers),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeaders(c.headers).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return nil, &APIError{URL: c.endpoint, Err: err}
	}

	body := resp.Body()
	c.logger.Debug("api response",
		"url", c.endpoint,
		"status", resp.StatusCode(),
		"bytes", len(body),
		"elapsed", resp.Time(),
	)

	if !resp.IsSuccess() {
		return nil, &APIError{URL: c.endpoint, StatusCode: resp.StatusCode(), Body: excerpt(body)}
	}
	if !json.Valid(body) {
		return nil, &APIError{URL: c.endpoint, StatusCode: resp.StatusCode(), Body: excerpt(body)}
	}

	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out, nil
}

// Endpoint returns the endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}
