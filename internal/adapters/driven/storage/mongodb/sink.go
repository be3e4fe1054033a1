package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Collection is the collection every platform writes into.
const Collection = "raw_comments"

// duplicateKey is the server error code for a unique index violation.
const duplicateKey = 11000

// Sink is a DocumentSink backed by MongoDB.
type Sink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ driven.DocumentSink = (*Sink)(nil)

// Open connects to uri, verifies the primary is reachable and selects the
// raw_comments collection of database.
func Open(ctx context.Context, uri, database string) (*Sink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("mongo: using %s.%s", database, Collection)
	return &Sink{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}, nil
}

// InsertOne stores doc unless its id is already present.
func (s *Sink) InsertOne(ctx context.Context, doc domain.Document) error {
	_, err := s.coll.InsertOne(ctx, normalize(doc))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert %s: %w", doc.ID, err)
	}
	return nil
}

// InsertMany stores docs, skipping ids already present.
func (s *Sink) InsertMany(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = normalize(doc)
	}

	_, err := s.coll.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	if err != nil && !onlyDuplicates(err) {
		return fmt.Errorf("insert %d documents: %w", len(docs), err)
	}
	return nil
}

// Count returns the number of stored documents, limited to one run when
// runID is set.
func (s *Sink) Count(ctx context.Context, runID string) (int64, error) {
	filter := bson.M{}
	if runID != "" {
		filter["scrape_run_id"] = runID
	}
	return s.coll.CountDocuments(ctx, filter)
}

// Get retrieves a document by id.
func (s *Sink) Get(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", id, err)
	}
	return &doc, nil
}

// Close disconnects the client.
func (s *Sink) Close() error {
	return s.client.Disconnect(context.Background())
}

// normalize keeps metadata an object in the stored document.
func normalize(doc domain.Document) domain.Document {
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	doc.ScrapedAt = doc.ScrapedAt.UTC()
	return doc
}

// onlyDuplicates reports whether err is a bulk write failure made up solely
// of duplicate key errors.
func onlyDuplicates(err error) bool {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return false
	}
	if bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != duplicateKey {
			return false
		}
	}
	return true
}
