package pager

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages serves numbered items in fixed size pages.
type fakePages struct {
	total    int
	pageSize int
	calls    int
	failAt   int // 1-based call number that fails, 0 = never
}

func (f *fakePages) fetch(_ context.Context, token string) (Page[int], error) {
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return Page[int]{}, errors.New("page failed")
	}

	start := 0
	if token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := start + f.pageSize
	if end > f.total {
		end = f.total
	}

	page := Page[int]{}
	for i := start; i < end; i++ {
		page.Items = append(page.Items, i)
	}
	if end < f.total {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func TestPaginate_StopsAtLimit(t *testing.T) {
	src := &fakePages{total: 100, pageSize: 10}

	items, err := Paginate(context.Background(), src.fetch, 25, nil)

	require.NoError(t, err)
	assert.Len(t, items, 25)
	assert.Equal(t, 3, src.calls)
	assert.Equal(t, 24, items[24])
}

func TestPaginate_StopsWithoutToken(t *testing.T) {
	src := &fakePages{total: 15, pageSize: 10}

	items, err := Paginate(context.Background(), src.fetch, 100, nil)

	require.NoError(t, err)
	assert.Len(t, items, 15)
	assert.Equal(t, 2, src.calls)
}

func TestPaginate_ReturnsPartialOnError(t *testing.T) {
	src := &fakePages{total: 100, pageSize: 10, failAt: 2}

	items, err := Paginate(context.Background(), src.fetch, 50, nil)

	require.Error(t, err)
	assert.Len(t, items, 10)
}

func TestPaginate_ZeroLimit(t *testing.T) {
	src := &fakePages{total: 10, pageSize: 10}

	items, err := Paginate(context.Background(), src.fetch, 0, nil)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, src.calls)
}

func TestPaginate_RepeatedTokenStops(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ string) (Page[int], error) {
		calls++
		return Page[int]{Items: []int{calls}, Next: "same"}, nil
	}

	items, err := Paginate(context.Background(), fetch, 100, nil)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
}

func TestPaginate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakePages{total: 100, pageSize: 10}

	_, err := Paginate(ctx, src.fetch, 50, NewPacer(0))

	require.ErrorIs(t, err, context.Canceled)
}

// endlessStream never runs out on its own.
type endlessStream struct{ n int }

func (s *endlessStream) Next(_ context.Context) (int, bool, error) {
	s.n++
	return s.n, true, nil
}

func TestTake_BoundsUnboundedStream(t *testing.T) {
	s := &endlessStream{}

	items, err := Take[int](context.Background(), s, 7)

	require.NoError(t, err)
	assert.Len(t, items, 7)
	assert.Equal(t, 7, s.n)
}

func TestPagedStream_LazyFetching(t *testing.T) {
	src := &fakePages{total: 50, pageSize: 10}
	stream := NewPagedStream(src.fetch, nil)

	items, err := Take[int](context.Background(), stream, 12)

	require.NoError(t, err)
	assert.Len(t, items, 12)
	assert.Equal(t, 2, src.calls)
}

func TestPagedStream_Exhausts(t *testing.T) {
	src := &fakePages{total: 13, pageSize: 5}
	stream := NewPagedStream(src.fetch, nil)

	items, err := Take[int](context.Background(), stream, 100)

	require.NoError(t, err)
	assert.Len(t, items, 13)
	assert.Equal(t, 3, src.calls)

	_, ok, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, src.calls)
}

func TestPagedStream_PropagatesError(t *testing.T) {
	src := &fakePages{total: 50, pageSize: 10, failAt: 1}
	stream := NewPagedStream(src.fetch, nil)

	_, err := Take[int](context.Background(), stream, 5)

	require.Error(t, err)
}
