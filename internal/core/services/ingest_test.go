package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

func request(p domain.Platform) driving.IngestRequest {
	return driving.IngestRequest{Platform: p, Criteria: domain.ParseCriteria("numerology")}
}

func TestIngest_Success(t *testing.T) {
	src := &mockSource{platform: domain.PlatformReddit, n: 3}
	snaps := &mockSnapshots{}
	sink := &mockSink{}
	svc := NewIngestService(registryWith(src), fixedRunIDs("run_1_abcdef01"), NewSinkWriter(snaps, sink))

	result, err := svc.Ingest(context.Background(), request(domain.PlatformReddit))
	require.NoError(t, err)

	assert.Equal(t, "run_1_abcdef01", result.RunID)
	assert.Equal(t, 3, result.Count())
	assert.Equal(t, "data/raw/reddit/reddit_raw_run_1_abcdef01.json", result.SnapshotPath)
	require.Len(t, snaps.batches, 1)
	assert.Len(t, snaps.batches[0], 3)
	assert.Equal(t, 1, sink.calls)
	assert.Len(t, sink.inserted, 3)
	for _, d := range result.Documents {
		assert.Equal(t, "run_1_abcdef01", d.ScrapeRunID)
	}
}

func TestIngest_AppliesDefaultBounds(t *testing.T) {
	src := &mockSource{platform: domain.PlatformYouTube}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(&mockSnapshots{}, &mockSink{}))

	req := request(domain.PlatformYouTube)
	req.Bounds = domain.Bounds{MaxItems: 2}
	_, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.Bounds{MaxItems: 2, MaxChildren: 50}, src.bounds)
}

func TestIngest_UnsupportedPlatform(t *testing.T) {
	src := &mockSource{platform: domain.PlatformReddit}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(&mockSnapshots{}, &mockSink{}))

	_, err := svc.Ingest(context.Background(), request(domain.PlatformTwitter))
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestIngest_EmptyCriteria(t *testing.T) {
	src := &mockSource{platform: domain.PlatformReddit}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(&mockSnapshots{}, &mockSink{}))

	_, err := svc.Ingest(context.Background(), driving.IngestRequest{Platform: domain.PlatformReddit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, src.calls)
}

func TestIngest_FetchFailureWritesNothing(t *testing.T) {
	src := &mockSource{platform: domain.PlatformInstagram, err: errors.New("source connection: profile lookup failed")}
	snaps := &mockSnapshots{}
	sink := &mockSink{}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(snaps, sink))

	result, err := svc.Ingest(context.Background(), request(domain.PlatformInstagram))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile lookup failed")
	assert.Nil(t, result)
	assert.Empty(t, snaps.batches)
	assert.Zero(t, sink.calls)
}

func TestIngest_SinkFailureKeepsSnapshot(t *testing.T) {
	src := &mockSource{platform: domain.PlatformYouTube, n: 4}
	snaps := &mockSnapshots{}
	sink := &mockSink{err: errors.New("connection refused")}
	svc := NewIngestService(registryWith(src), fixedRunIDs("run_2_00000000"), NewSinkWriter(snaps, sink))

	result, err := svc.Ingest(context.Background(), request(domain.PlatformYouTube))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSinkWrite)
	assert.Contains(t, err.Error(), "connection refused")
	require.NotNil(t, result)
	assert.NotEmpty(t, result.SnapshotPath)
	assert.Equal(t, 4, result.Count())
	require.Len(t, snaps.batches, 1)
	assert.Len(t, snaps.batches[0], 4)
}

func TestIngest_EmptyBatch(t *testing.T) {
	src := &mockSource{platform: domain.PlatformTwitter}
	snaps := &mockSnapshots{}
	sink := &mockSink{}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(snaps, sink))

	result, err := svc.Ingest(context.Background(), request(domain.PlatformTwitter))
	require.NoError(t, err)

	assert.Zero(t, result.Count())
	require.Len(t, snaps.batches, 1)
	assert.NotNil(t, snaps.batches[0])
	assert.Empty(t, snaps.batches[0])
	assert.Zero(t, sink.calls)
}

func TestIngest_DistinctRunIDsPerInvocation(t *testing.T) {
	src := &mockSource{platform: domain.PlatformReddit, n: 1}
	snaps := &mockSnapshots{}
	svc := NewIngestService(registryWith(src), NewRunIDs(), NewSinkWriter(snaps, &mockSink{}))

	first, err := svc.Ingest(context.Background(), request(domain.PlatformReddit))
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), request(domain.PlatformReddit))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Documents[0].ID, second.Documents[0].ID)
}
