package store

import (
	"net/http"
	"time"

	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithCredentials sets the login used by Login.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithReadRetries sets how many extra attempts read requests get and the
// initial delay between them. Writes are never retried.
func WithReadRetries(retries int, delay time.Duration) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its cookie jar, if
// any, carries the session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
