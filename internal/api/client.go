// Package api implements the HTTP client for the reading-assistant backend.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"github.com/diogo/readingchat/internal/models"
)

// Doer sends a single HTTP request. tls_client.HttpClient satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClient is the backend surface used by the dispatcher and commands
type ChatClient interface {
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
	Health(ctx context.Context) (*models.HealthStatus, error)
	Endpoint() string
}

// Client talks to the reading-assistant backend
type Client struct {
	httpClient     Doer
	endpoint       string
	courseID       string
	tenantID       string
	timeoutSeconds int
	logger         zerolog.Logger
}

var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint sets the backend base URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithScope sets the course and tenant identifiers sent with every message
func WithScope(courseID, tenantID string) ClientOption {
	return func(c *Client) {
		c.courseID = courseID
		c.tenantID = tenantID
	}
}

// WithTimeout sets the transport timeout in seconds. Zero keeps the
// transport default.
func WithTimeout(seconds int) ClientOption {
	return func(c *Client) {
		c.timeoutSeconds = seconds
	}
}

// WithHTTPClient replaces the transport
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint: models.DefaultEndpoint,
		courseID: models.DefaultCourseID,
		tenantID: models.DefaultTenantID,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.endpoint = strings.TrimRight(strings.TrimSpace(client.endpoint), "/")
	if _, err := parseEndpoint(client.endpoint); err != nil {
		return nil, err
	}

	if client.httpClient == nil {
		httpClient, err := newTransport(client.endpoint, client.timeoutSeconds)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// newTransport builds the tls-client transport. The Chrome profile makes
// requests look like they come from the browser the popup ran in.
func newTransport(endpoint string, timeoutSeconds int) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
	}
	if timeoutSeconds > 0 {
		options = append(options, tls_client.WithTimeoutSeconds(timeoutSeconds))
	}

	proxyURL, err := ProxyFor(endpoint)
	if err != nil {
		return nil, err
	}
	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}

	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	return u, nil
}

// Endpoint returns the backend base URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ChatURL returns the full URL of the chat route
func (c *Client) ChatURL() string {
	return c.endpoint + models.PathChat
}

// HealthURL returns the full URL of the health route
func (c *Client) HealthURL() string {
	return c.endpoint + models.PathHealth
}
