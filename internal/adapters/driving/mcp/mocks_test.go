package mcp

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	result *driving.IngestResult
	err    error
	got    []driving.IngestRequest
}

func (m *mockIngestor) Ingest(_ context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	m.got = append(m.got, req)
	return m.result, m.err
}
