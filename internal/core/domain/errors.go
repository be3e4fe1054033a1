package domain

import "errors"

// Domain errors represent pipeline failures by category.
// Infrastructure errors are wrapped with these using fmt.Errorf("%w").
var (
	// ErrInvalidInput indicates malformed or missing user input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform indicates an unknown platform name.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrConfig indicates a missing credential or connection string.
	// Always raised before any network call.
	ErrConfig = errors.New("configuration error")

	// ErrSourceConnection indicates the top-level iterator could not be
	// established (account lookup, auth rejected, unreachable).
	ErrSourceConnection = errors.New("source connection failed")

	// ErrSnapshotWrite indicates the local snapshot could not be written.
	ErrSnapshotWrite = errors.New("snapshot write failed")

	// ErrSinkWrite indicates the datastore insert failed.
	// The snapshot has already been written when this is returned.
	ErrSinkWrite = errors.New("datastore write failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrSinkClosed indicates the datastore sink has been closed.
	ErrSinkClosed = errors.New("sink closed")
)
