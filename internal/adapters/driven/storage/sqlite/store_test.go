package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "insight.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDoc(nativeID, text, runID string) domain.Document {
	return domain.NewDocument(domain.Record{
		Platform:     domain.PlatformYouTube,
		PostType:     domain.PostComment,
		NativeID:     nativeID,
		ParentID:     "vid1",
		SourceURL:    "https://www.youtube.com/watch?v=vid1&lc=" + nativeID,
		AuthorHandle: "alice",
		Text:         text,
		Metadata:     map[string]any{"video_id": "vid1", "likeCount": 4},
	}, runID, time.Date(2025, 2, 3, 4, 5, 6, 7, time.UTC))
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.InsertOne(context.Background(), testDoc("c1", "hi", "run_1")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, path, reopened.Path())
	n, err := reopened.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_InsertMany_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs := []domain.Document{testDoc("c1", "first", "run_1"), testDoc("c2", "second", "run_1")}
	require.NoError(t, store.InsertMany(ctx, docs))

	got, err := store.Get(ctx, "youtube_c2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, docs[1].ID, got.ID)
	assert.Equal(t, domain.PlatformYouTube, got.Platform)
	assert.Equal(t, domain.PostComment, got.PostType)
	assert.Equal(t, "second", got.Text)
	assert.Equal(t, docs[1].AuthorHandleHash, got.AuthorHandleHash)
	assert.True(t, docs[1].ScrapedAt.Equal(got.ScrapedAt))
	assert.Equal(t, "vid1", got.Metadata["video_id"])
	assert.Equal(t, float64(4), got.Metadata["likeCount"])
}

func TestStore_DuplicatesIgnored(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertMany(ctx, []domain.Document{testDoc("c1", "original", "run_1")}))
	require.NoError(t, store.InsertMany(ctx, []domain.Document{
		testDoc("c1", "rewritten", "run_2"),
		testDoc("c3", "new", "run_2"),
	}))

	got, err := store.Get(ctx, "youtube_c1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
	assert.Equal(t, "run_1", got.ScrapeRunID)

	total, err := store.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	run2, err := store.Count(ctx, "run_2")
	require.NoError(t, err)
	assert.Equal(t, 1, run2)
}

func TestStore_EmptyBatch(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.InsertMany(context.Background(), nil))
}

func TestStore_NilMetadataStoredAsObject(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDoc("c9", "x", "run_1")
	doc.Metadata = nil
	require.NoError(t, store.InsertOne(ctx, doc))

	got, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Metadata)
	assert.Empty(t, got.Metadata)
}

func TestStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.Get(context.Background(), "youtube_none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ClosedReturnsError(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "insight.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.InsertOne(context.Background(), testDoc("c1", "x", "run_1")))
}
