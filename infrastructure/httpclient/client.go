package httpclient

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultMaxBodySize limits how much of a response body is read (10MB).
const DefaultMaxBodySize = 10 * 1024 * 1024

// ErrBodyTooLarge is returned when a response body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// AuthHeader is added as "Authorization: <HeaderType> <Value>" to requests
// for a configured host. $VAR and ${VAR} in Value are expanded from the
// environment when the client is created.
type AuthHeader struct {
	HeaderType string `json:"headerType" yaml:"headerType" validate:"required"`
	Value      string `json:"value" yaml:"value" validate:"required"`
}

// Client performs rule-checked HTTP requests.
type Client struct {
	client      *http.Client
	resolver    Resolver
	auth        map[string]AuthHeader
	rules       Rules
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithRules sets the request rules. The default allows everything.
func WithRules(rules Rules) Option {
	return func(c *Client) {
		c.rules = rules
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithResolver replaces net.DefaultResolver for rule checks.
func WithResolver(r Resolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithHTTPClient replaces the underlying client, e.g. with one from httptest.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithAuthHeaders sets the Authorization header sent to each host.
func WithAuthHeaders(headers map[string]AuthHeader) Option {
	return func(c *Client) {
		c.auth = make(map[string]AuthHeader, len(headers))
		for host, h := range headers {
			h.Value = os.ExpandEnv(h.Value)
			c.auth[strings.ToLower(host)] = h
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: 30 * time.Second},
		resolver:    net.DefaultResolver,
		rules:       DefaultRules(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch sends the request and returns the response body.
// A status above 299 is returned as an error "<status>: <body>".
func (c *Client) Fetch(ctx context.Context, method, rawURL string, body []byte, headers http.Header) ([]byte, error) {
	resp, status, err := c.Do(ctx, method, rawURL, body, headers)
	if err != nil {
		return nil, err
	}

	if status > 299 {
		return nil, errors.Errorf("%d: %s", status, string(resp))
	}
	return resp, nil
}

// Do sends the request and returns the body and status code, whatever the status.
func (c *Client) Do(ctx context.Context, method, rawURL string, body []byte, headers http.Header) ([]byte, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to Parse URL")
	}

	if err := c.rules.Check(ctx, u, c.resolver); err != nil {
		return nil, 0, errors.Wrap(err, "failed to Check rules")
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to NewRequest")
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	if h, ok := c.auth[strings.ToLower(u.Host)]; ok && h.Value != "" {
		req.Header.Set("Authorization", h.HeaderType+" "+h.Value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to Do request")
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, c.maxBodySize)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read body")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrBodyTooLarge, "limit %d bytes", limit)
	}
	return data, nil
}
