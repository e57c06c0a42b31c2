// Package httpclient is the outbound HTTP backend behind fetch_url and
// graphql_query. Every request is checked against Rules before it is sent.
package httpclient
