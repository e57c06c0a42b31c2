// Package graphql is the backend behind graphql_query.
package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/reglet-dev/runnable-sdk/infrastructure/httpclient"
)

// Request is the body POSTed to the endpoint.
type Request struct {
	Variables     map[string]string `json:"variables"`
	Query         string            `json:"query"`
	OperationName string            `json:"operationName,omitempty"`
}

// Response is a GraphQL response document.
type Response struct {
	Data   map[string]any `json:"data"`
	Errors []Error        `json:"errors,omitempty"`
}

// Error is one entry of a response's errors list.
type Error struct {
	Message string `json:"message"`
	Path    any    `json:"path,omitempty"`
}

// Client sends queries through a rule-checked HTTP client.
type Client struct {
	http *httpclient.Client
}

// New creates a Client.
func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// Do POSTs query to endpoint and returns the response document as JSON.
// A non-2xx status or a response carrying errors is returned as an error.
func (c *Client) Do(ctx context.Context, endpoint, query string) ([]byte, error) {
	body, err := json.Marshal(Request{Query: query, Variables: map[string]string{}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to Marshal request")
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	raw, status, err := c.http.Do(ctx, http.MethodPost, endpoint, body, headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Do")
	}

	if status > 299 {
		return nil, errors.Errorf("non-200 HTTP response code; %s", string(raw))
	}

	resp := Response{}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to Unmarshal response")
	}

	if len(resp.Errors) > 0 {
		return nil, errors.Errorf("graphQL error; path: %v, message: %s", resp.Errors[0].Path, resp.Errors[0].Message)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Marshal response")
	}
	return out, nil
}
