package pager

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// fakeSource exposes parents with a fixed number of children each.
type fakeSource struct {
	parents  int
	children int
	failing  map[string]bool
	fetched  []string
}

func (f *fakeSource) listParents(ctx context.Context, token string) (Page[string], error) {
	var page Page[string]
	for i := 0; i < f.parents; i++ {
		page.Items = append(page.Items, fmt.Sprintf("post%d", i+1))
	}
	return page, nil
}

func (f *fakeSource) fetchChildren(ctx context.Context, parent string, limit int) ([]domain.Document, error) {
	f.fetched = append(f.fetched, parent)
	if f.failing[parent] {
		return nil, errors.New("comments disabled")
	}

	fetch := func(_ context.Context, token string) (Page[domain.Document], error) {
		var page Page[domain.Document]
		for i := 0; i < f.children; i++ {
			page.Items = append(page.Items, domain.NewDocument(domain.Record{
				Platform: domain.PlatformYouTube,
				PostType: domain.PostComment,
				NativeID: fmt.Sprintf("%s-c%d", parent, i),
				ParentID: parent,
				Metadata: map[string]any{"video_id": parent},
			}, "run_test", time.Now()))
		}
		return page, nil
	}
	return Paginate(ctx, fetch, limit, nil)
}

func TestHarvest_BoundEnforcement(t *testing.T) {
	src := &fakeSource{parents: 10, children: 10}
	ctx := context.Background()

	parents, err := Paginate(ctx, src.listParents, 2, nil)
	require.NoError(t, err)

	docs, err := Harvest(ctx, domain.PlatformYouTube, parents, func(p string) string { return p }, 3, src.fetchChildren)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(docs), 6)
	distinct := map[any]bool{}
	for _, d := range docs {
		distinct[d.Metadata["video_id"]] = true
	}
	assert.LessOrEqual(t, len(distinct), 2)
	assert.Len(t, docs, 6)
}

func TestHarvest_PartialFailureContainment(t *testing.T) {
	src := &fakeSource{parents: 5, children: 2, failing: map[string]bool{"post2": true}}
	ctx := context.Background()

	parents, err := Paginate(ctx, src.listParents, 5, nil)
	require.NoError(t, err)

	docs, err := Harvest(ctx, domain.PlatformYouTube, parents, func(p string) string { return p }, 10, src.fetchChildren)
	require.NoError(t, err)

	represented := map[any]bool{}
	for _, d := range docs {
		represented[d.Metadata["video_id"]] = true
	}
	assert.Len(t, represented, 4)
	assert.False(t, represented["post2"])
	assert.Equal(t, []string{"post1", "post2", "post3", "post4", "post5"}, src.fetched)
}

func TestHarvest_KeepsPartialChildren(t *testing.T) {
	fetch := func(_ context.Context, parent string, _ int) ([]domain.Document, error) {
		doc := domain.NewDocument(domain.Record{Platform: domain.PlatformReddit, NativeID: parent}, "r", time.Now())
		return []domain.Document{doc}, errors.New("second page failed")
	}

	docs, err := Harvest(context.Background(), domain.PlatformReddit, []string{"a", "b"}, func(p string) string { return p }, 5, fetch)

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestHarvest_TruncatesOverlongChildren(t *testing.T) {
	fetch := func(_ context.Context, parent string, _ int) ([]domain.Document, error) {
		return make([]domain.Document, 10), nil
	}

	docs, err := Harvest(context.Background(), domain.PlatformReddit, []string{"a"}, func(p string) string { return p }, 4, fetch)

	require.NoError(t, err)
	assert.Len(t, docs, 4)
}

func TestHarvest_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fetch := func(_ context.Context, _ string, _ int) ([]domain.Document, error) {
		calls++
		cancel()
		return nil, context.Canceled
	}

	_, err := Harvest(ctx, domain.PlatformReddit, []string{"a", "b", "c"}, func(p string) string { return p }, 5, fetch)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
