package driven

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// Source fetches content from one external platform and maps every item
// into a canonical Document. Each platform (instagram, reddit, etc.)
// implements this interface.
type Source interface {
	// Platform returns the platform this source reads from.
	Platform() domain.Platform

	// DefaultBounds returns the limits used when the caller passes none.
	DefaultBounds() domain.Bounds

	// Fetch walks top-level items and their children within bounds.
	// A failure establishing the top-level iterator is returned as an error
	// wrapping domain.ErrSourceConnection. Failures fetching a single item's
	// children are logged and skipped. Fetch performs no writes.
	Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error)
}
