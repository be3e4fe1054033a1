package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.DocumentSink = (*Sink)(nil)

// Sink is an in-memory implementation of driven.DocumentSink.
// The first document stored under an id wins.
type Sink struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	order  []string
	closed bool
}

// NewSink creates an empty in-memory sink.
func NewSink() *Sink {
	return &Sink{
		docs: make(map[string]domain.Document),
	}
}

// InsertOne stores doc unless its id is already present.
func (s *Sink) InsertOne(ctx context.Context, doc domain.Document) error {
	return s.InsertMany(ctx, []domain.Document{doc})
}

// InsertMany stores docs, skipping ids already present.
func (s *Sink) InsertMany(ctx context.Context, docs []domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSinkClosed
	}
	for _, doc := range docs {
		if _, ok := s.docs[doc.ID]; ok {
			continue
		}
		s.docs[doc.ID] = doc
		s.order = append(s.order, doc.ID)
	}
	return nil
}

// Close marks the sink closed. Stored documents stay readable.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Documents returns the stored documents in insertion order.
func (s *Sink) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out
}

// Get retrieves a document by id.
func (s *Sink) Get(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
