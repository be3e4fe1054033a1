package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates an invalid API key.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")

	// ErrQuotaExceeded indicates the daily quota was exhausted.
	ErrQuotaExceeded = errors.New("google: quota exceeded")

	// ErrCommentsDisabled indicates a video does not accept comments.
	ErrCommentsDisabled = errors.New("google: comments disabled")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	return codeIs(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) {
		return true
	}
	return codeIs(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return codeIs(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	return codeIs(err, http.StatusTooManyRequests)
}

// IsQuotaExceeded returns true if the daily quota is exhausted.
// YouTube reports this as 403 with reason quotaExceeded.
func IsQuotaExceeded(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	return hasReason(err, "quotaExceeded")
}

// IsCommentsDisabled returns true if a commentThreads call failed because
// the video has comments turned off.
func IsCommentsDisabled(err error) bool {
	if errors.Is(err, ErrCommentsDisabled) {
		return true
	}
	return hasReason(err, "commentsDisabled")
}

func codeIs(err error, code int) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

func hasReason(err error, reason string) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}

// WrapError tags a Google API error with a sentinel. The original error
// stays in the chain so the server's message is preserved.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case IsCommentsDisabled(err):
		return fmt.Errorf("%w: %w", ErrCommentsDisabled, err)
	case IsQuotaExceeded(err):
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return err
	}
}
