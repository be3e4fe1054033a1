package google

import (
	"context"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ServiceOption customises a Google API service beyond the API key.
type ServiceOption = option.ClientOption

// WithEndpoint overrides the API base URL. Used against fake servers.
func WithEndpoint(url string) ServiceOption {
	return option.WithEndpoint(url)
}

// apiKeyTransport appends the developer key to every request.
// option.WithAPIKey is ignored once a custom HTTP client is supplied.
type apiKeyTransport struct {
	base http.RoundTripper
	key  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}

// NewYouTubeService creates a YouTube Data API service using a developer key.
// The supplied client carries the timeout; nil falls back to the library default.
func NewYouTubeService(ctx context.Context, apiKey string, client *http.Client, opts ...ServiceOption) (*youtube.Service, error) {
	if client == nil {
		return youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	}

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	keyed := &http.Client{
		Timeout:   client.Timeout,
		Transport: &apiKeyTransport{base: base, key: apiKey},
	}
	return youtube.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(keyed)}, opts...)...)
}
