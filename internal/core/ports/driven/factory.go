package driven

import (
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// SourceBuilder creates a Source from the process credentials.
type SourceBuilder func(creds domain.Credentials) (Source, error)

// SourceFactory creates sources by platform.
type SourceFactory interface {
	// Create returns the Source for platform.
	// Returns domain.ErrUnsupportedPlatform if nothing is registered.
	Create(platform domain.Platform) (Source, error)

	// Register adds a builder for platform, replacing any previous one.
	Register(platform domain.Platform, builder SourceBuilder)

	// SupportedPlatforms returns all registered platforms.
	SupportedPlatforms() []domain.Platform
}
