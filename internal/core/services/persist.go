package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// SinkWriter persists a batch twice: a local snapshot that is always
// written, then a bulk insert into the shared datastore.
type SinkWriter struct {
	snapshots driven.SnapshotWriter
	sink      driven.DocumentSink
}

// NewSinkWriter creates a sink writer. A nil sink skips the datastore.
func NewSinkWriter(snapshots driven.SnapshotWriter, sink driven.DocumentSink) *SinkWriter {
	return &SinkWriter{snapshots: snapshots, sink: sink}
}

// Persist writes the snapshot and then inserts docs into the sink.
// A snapshot failure is returned wrapping domain.ErrSnapshotWrite and the
// insert is not attempted. A sink failure returns the snapshot path together
// with an error wrapping domain.ErrSinkWrite. Empty batches skip the insert.
func (w *SinkWriter) Persist(ctx context.Context, docs []domain.Document, platform domain.Platform, criteria domain.Criteria, runID string) (string, error) {
	path, err := w.snapshots.Write(ctx, platform, criteria, runID, docs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSnapshotWrite, err)
	}
	logger.Debug("snapshot written to %s", path)

	if len(docs) == 0 || w.sink == nil {
		return path, nil
	}

	if err := w.sink.InsertMany(ctx, docs); err != nil {
		return path, fmt.Errorf("%w: %w", domain.ErrSinkWrite, err)
	}
	logger.Debug("inserted %d documents", len(docs))
	return path, nil
}
