package pager

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Page is one page of results plus the token for the following page.
// An empty Next means the source has no further pages.
type Page[T any] struct {
	Items []T
	Next  string
}

// PageFunc fetches the page identified by token ("" for the first page).
type PageFunc[T any] func(ctx context.Context, token string) (Page[T], error)

// Paginate keeps requesting pages until limit items are collected or the
// source stops returning a continuation token. The pacer is waited on before
// every request. Items collected before an error are returned with it.
func Paginate[T any](ctx context.Context, fetch PageFunc[T], limit int, pacer *Pacer) ([]T, error) {
	if limit <= 0 {
		return nil, nil
	}

	var items []T
	token := ""
	for {
		if err := pacer.Wait(ctx); err != nil {
			return items, err
		}

		page, err := fetch(ctx, token)
		if err != nil {
			return items, err
		}

		for _, item := range page.Items {
			items = append(items, item)
			if len(items) >= limit {
				return items, nil
			}
		}

		if page.Next == "" {
			return items, nil
		}
		if page.Next == token {
			logger.Warn("pagination token %q repeated, stopping", token)
			return items, nil
		}
		token = page.Next
	}
}

// Stream is a lazy, possibly unbounded sequence. Next returns false once the
// stream is exhausted.
type Stream[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Take pulls at most limit items from s. The stream is never assumed to
// limit itself; Take stops as soon as the count is reached.
func Take[T any](ctx context.Context, s Stream[T], limit int) ([]T, error) {
	var items []T
	for len(items) < limit {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		item, ok, err := s.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// PagedStream exposes token pages as a lazy item stream. A page is only
// requested when the buffered items run out.
type PagedStream[T any] struct {
	fetch   PageFunc[T]
	pacer   *Pacer
	buf     []T
	token   string
	started bool
	done    bool
}

// NewPagedStream wraps fetch in a Stream.
func NewPagedStream[T any](fetch PageFunc[T], pacer *Pacer) *PagedStream[T] {
	return &PagedStream[T]{fetch: fetch, pacer: pacer}
}

// Next implements Stream.
func (s *PagedStream[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for len(s.buf) == 0 {
		if s.done {
			return zero, false, nil
		}
		if s.started && s.token == "" {
			s.done = true
			return zero, false, nil
		}

		if err := s.pacer.Wait(ctx); err != nil {
			return zero, false, err
		}
		page, err := s.fetch(ctx, s.token)
		if err != nil {
			return zero, false, err
		}

		if s.started && page.Next == s.token {
			page.Next = ""
		}
		s.started = true
		s.buf = page.Items
		s.token = page.Next
		if len(page.Items) == 0 && page.Next == "" {
			s.done = true
		}
	}

	item := s.buf[0]
	s.buf = s.buf[1:]
	return item, true, nil
}
