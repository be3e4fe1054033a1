package pager

import (
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the scraper to platforms that require one.
const DefaultUserAgent = "insight-scraper/0.1"

// userAgentTransport stamps a fixed User-Agent on every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// NewHTTPClient returns a client with an explicit timeout and user agent.
// Non-positive timeouts fall back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: userAgent,
		},
	}
}
