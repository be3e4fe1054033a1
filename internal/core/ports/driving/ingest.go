package driving

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// Ingestor runs one ingestion end to end: fetch, normalise, persist.
type Ingestor interface {
	// Ingest fetches from the requested platform and persists the batch.
	// On a datastore failure the returned result is non-nil (the snapshot
	// exists) and the error wraps domain.ErrSinkWrite.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}

// IngestRequest describes a single run.
type IngestRequest struct {
	Platform domain.Platform
	Criteria domain.Criteria
	Bounds   domain.Bounds
}

// IngestResult summarises a completed run.
type IngestResult struct {
	RunID        string
	Documents    []domain.Document
	SnapshotPath string
}

// Count returns the number of documents written.
func (r *IngestResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Documents)
}
