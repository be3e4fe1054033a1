package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs one ingestion: resolve the source, fetch within
// bounds, then persist the batch under a fresh run id.
type IngestService struct {
	factory driven.SourceFactory
	runIDs  driven.RunIDGenerator
	writer  *SinkWriter
	now     func() time.Time
}

// NewIngestService creates an ingest service.
func NewIngestService(factory driven.SourceFactory, runIDs driven.RunIDGenerator, writer *SinkWriter) *IngestService {
	return &IngestService{
		factory: factory,
		runIDs:  runIDs,
		writer:  writer,
		now:     time.Now,
	}
}

// Ingest performs a single run. Fetch failures return no result and write
// nothing. A datastore failure returns the result (its snapshot exists)
// alongside an error wrapping domain.ErrSinkWrite.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if req.Criteria.IsEmpty() {
		return nil, fmt.Errorf("%w: no targets given", domain.ErrInvalidInput)
	}

	src, err := s.factory.Create(req.Platform)
	if err != nil {
		return nil, err
	}

	run := domain.Run{ID: s.runIDs.NewRunID(), StartedAt: s.now().UTC()}
	bounds := req.Bounds.WithDefaults(src.DefaultBounds())
	logger.Info("%s: run %s targets=%s bounds=%d/%d",
		req.Platform, run.ID, req.Criteria, bounds.MaxItems, bounds.MaxChildren)

	docs, err := src.Fetch(ctx, run, req.Criteria, bounds)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	path, err := s.writer.Persist(ctx, docs, req.Platform, req.Criteria, run.ID)
	if err != nil && !errors.Is(err, domain.ErrSinkWrite) {
		return nil, err
	}

	result := &driving.IngestResult{RunID: run.ID, Documents: docs, SnapshotPath: path}
	if err != nil {
		logger.Warn("%s: datastore insert failed, snapshot kept at %s: %v", req.Platform, path, err)
		return result, err
	}

	logger.Info("%s: run %s finished with %d documents in %s",
		req.Platform, run.ID, len(docs), s.now().Sub(run.StartedAt).Round(time.Millisecond))
	return result, nil
}
