package pager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// maxErrorBody caps how much of an error response is kept in APIError.
const maxErrorBody = 512

// APIError represents a non-2xx response from a platform API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap lets errors.Is(err, domain.ErrRateLimited) match 429 responses.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return domain.ErrRateLimited
	}
	return nil
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// Do sends req and returns the body of a 2xx response.
// Any other status becomes an *APIError carrying the response text.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			URL:        req.URL.String(),
		}
	}
	return body, nil
}

// GetJSON performs a GET and decodes the JSON response into out.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	body, err := Do(client, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ConnectionError marks err as a failure to establish the top-level iterator.
func ConnectionError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrSourceConnection, what, err)
}
