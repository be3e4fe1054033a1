package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

// mockSource returns n documents stamped with the run id.
type mockSource struct {
	platform domain.Platform
	n        int
	err      error
	bounds   domain.Bounds
	calls    int
}

func (m *mockSource) Platform() domain.Platform { return m.platform }

func (m *mockSource) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: 10, MaxChildren: 50}
}

func (m *mockSource) Fetch(_ context.Context, run domain.Run, _ domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	m.calls++
	m.bounds = bounds
	if m.err != nil {
		return nil, m.err
	}
	var docs []domain.Document
	for i := 0; i < m.n; i++ {
		docs = append(docs, domain.NewDocument(domain.Record{
			Platform: m.platform,
			PostType: domain.PostComment,
			NativeID: fmt.Sprintf("c%d", i),
			Text:     "text",
		}, run.ID, time.Now()))
	}
	return docs, nil
}

// mockSnapshots records every batch it is asked to write.
type mockSnapshots struct {
	batches [][]domain.Document
	runIDs  []string
	err     error
}

func (m *mockSnapshots) Write(_ context.Context, platform domain.Platform, _ domain.Criteria, runID string, docs []domain.Document) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.batches = append(m.batches, docs)
	m.runIDs = append(m.runIDs, runID)
	return fmt.Sprintf("data/raw/%s/%s_raw_%s.json", platform, platform, runID), nil
}

// mockSink records inserts and can be told to fail.
type mockSink struct {
	inserted []domain.Document
	calls    int
	err      error
	closed   bool
}

func (m *mockSink) InsertOne(ctx context.Context, doc domain.Document) error {
	return m.InsertMany(ctx, []domain.Document{doc})
}

func (m *mockSink) InsertMany(_ context.Context, docs []domain.Document) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, docs...)
	return nil
}

func (m *mockSink) Close() error {
	m.closed = true
	return nil
}

// fixedRunIDs hands out a constant id.
type fixedRunIDs string

func (f fixedRunIDs) NewRunID() string { return string(f) }

var (
	_ driven.Source         = (*mockSource)(nil)
	_ driven.SnapshotWriter = (*mockSnapshots)(nil)
	_ driven.DocumentSink   = (*mockSink)(nil)
)

func registryWith(src *mockSource) *SourceRegistry {
	r := NewSourceRegistry(domain.Credentials{})
	r.Register(src.platform, func(domain.Credentials) (driven.Source, error) { return src, nil })
	return r
}
