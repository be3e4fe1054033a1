package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

// Ensure SourceRegistry implements the interface.
var _ driven.SourceFactory = (*SourceRegistry)(nil)

// SourceRegistry builds sources for registered platforms from one set of
// credentials.
type SourceRegistry struct {
	creds domain.Credentials

	mu       sync.RWMutex
	builders map[domain.Platform]driven.SourceBuilder
}

// NewSourceRegistry creates an empty registry.
func NewSourceRegistry(creds domain.Credentials) *SourceRegistry {
	return &SourceRegistry{
		creds:    creds,
		builders: make(map[domain.Platform]driven.SourceBuilder),
	}
}

// Register adds a builder for platform, replacing any previous one.
func (r *SourceRegistry) Register(platform domain.Platform, builder driven.SourceBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[platform] = builder
}

// Create builds the source for platform.
func (r *SourceRegistry) Create(platform domain.Platform) (driven.Source, error) {
	r.mu.RLock()
	build, ok := r.builders[platform]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
	}

	src, err := build(r.creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfig, platform, err)
	}
	return src, nil
}

// SupportedPlatforms returns the registered platforms in name order.
func (r *SourceRegistry) SupportedPlatforms() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]domain.Platform, 0, len(r.builders))
	for p := range r.builders {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
