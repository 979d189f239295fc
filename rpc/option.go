package rpc

import (
	"log"
	"net/http"
	"time"
)

// Option represents client option
type Option func(c *Client)

// WithTimeout sets per request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets http client, it takes precedence over WithRoundTripper and WithTracing
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRoundTripper sets base http transport
func WithRoundTripper(roundTripper http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = roundTripper
	}
}

// WithHeader adds extra http header to every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithTracing instruments http transport with OpenTelemetry
func WithTracing(enabled bool) Option {
	return func(c *Client) {
		c.traced = enabled
	}
}

// WithLogger sets diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
