// Package graphql sends GraphQL queries through the host.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Query sends query to endpoint and returns the raw response document.
func Query(ctx context.Context, endpoint, query string) ([]byte, error) {
	env, err := ffi.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	endpointAddr, endpointLen, releaseEndpoint := env.PassString(endpoint)
	defer releaseEndpoint()
	queryAddr, queryLen, releaseQuery := env.PassString(query)
	defer releaseQuery()

	size := env.Host().GraphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, env.Ident())
	return env.Result(size)
}

// Response is a GraphQL response document.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// Error is one entry of a response's errors list.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// QueryInto sends query and decodes the response's data field into dest.
// GraphQL errors in the response are returned as a single error.
func QueryInto(ctx context.Context, endpoint, query string, dest any) error {
	payload, err := Query(ctx, endpoint, query)
	if err != nil {
		return err
	}

	var res Response
	if err := json.Unmarshal(payload, &res); err != nil {
		return fmt.Errorf("graphql: decode response: %w", err)
	}

	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}

	if dest == nil || len(res.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Data, dest); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}
	return nil
}
