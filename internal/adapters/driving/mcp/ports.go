package mcp

import (
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

// Ports aggregates what the MCP server drives.
type Ports struct {
	// Ingestor runs ingestion requests.
	Ingestor driving.Ingestor

	// Platforms lists the platforms the ingestor can serve.
	// Defaults to every known platform.
	Platforms []domain.Platform
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingestor == nil {
		return ErrMissingIngestor
	}
	return nil
}

func (p *Ports) platforms() []domain.Platform {
	if len(p.Platforms) > 0 {
		return p.Platforms
	}
	return domain.Platforms()
}
