package driven

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// DocumentSink is the shared "raw comments" collection.
// Documents are keyed by ID; how duplicates are handled is up to the sink.
type DocumentSink interface {
	// InsertOne stores a single document.
	InsertOne(ctx context.Context, doc domain.Document) error

	// InsertMany stores a batch of documents.
	InsertMany(ctx context.Context, docs []domain.Document) error

	// Close releases the underlying connection.
	Close() error
}

// SnapshotWriter persists a whole batch as one durable local file.
type SnapshotWriter interface {
	// Write stores docs atomically and returns the file path.
	// An empty batch still produces a file.
	Write(ctx context.Context, platform domain.Platform, criteria domain.Criteria, runID string, docs []domain.Document) (string, error)
}

// RunIDGenerator produces run identifiers that stay unique across rapid
// successive invocations.
type RunIDGenerator interface {
	NewRunID() string
}
