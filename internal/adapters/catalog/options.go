package catalog

import (
	"net/http"

	"github.com/carver/wishforge/pkg/logger"
)

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithCachePath sets the sqlite file holding the catalog snapshot.
func WithCachePath(path string) Option {
	return func(c *Catalog) {
		if path != "" {
			c.cachePath = path
		}
	}
}

// WithRequestsPerSecond caps outbound catalog requests.
func WithRequestsPerSecond(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.requestsPerSecond = n
		}
	}
}

// WithLogger sets the logger for snapshot lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBaseURLs points the client at alternate service endpoints. Used by
// tests against a local server.
func WithBaseURLs(platformURL, contentURL string) Option {
	return func(c *Catalog) {
		c.platformURL = platformURL
		c.contentURL = contentURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Catalog) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}
