package surreal

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	sdklogger "github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// DefaultNamespace holds every insight database.
const DefaultNamespace = "insights"

const schemaSQL = `
	DEFINE TABLE IF NOT EXISTS raw_comments SCHEMALESS;
	DEFINE INDEX IF NOT EXISTS raw_comments_run ON raw_comments FIELDS scrape_run_id;
	DEFINE INDEX IF NOT EXISTS raw_comments_platform ON raw_comments FIELDS platform;
`

func init() {
	// WebSocket upgrade needs HTTP/1.1; prevent ALPN from negotiating h2.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// Config addresses a SurrealDB instance.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// ConfigFromURI reads credentials from the userinfo of rawURI. http and
// https are rewritten to ws and wss.
func ConfigFromURI(rawURI, database string) (Config, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return Config{}, fmt.Errorf("%w: datastore uri: %w", domain.ErrConfig, err)
	}

	cfg := Config{Namespace: DefaultNamespace, Database: database}
	if u.User != nil {
		cfg.Username = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return Config{}, fmt.Errorf("%w: unsupported surreal scheme %q", domain.ErrConfig, u.Scheme)
	}
	u.User = nil
	// gorillaws appends /rpc itself.
	u.Path = strings.TrimSuffix(u.Path, "/rpc")
	cfg.URL = u.String()
	return cfg, nil
}

// Sink is a DocumentSink backed by SurrealDB.
type Sink struct {
	conn *rews.Connection[*gorillaws.Connection]
	db   *surrealdb.DB
}

var _ driven.DocumentSink = (*Sink)(nil)

// Open connects, signs in as a root user, selects the namespace and database
// and defines the raw_comments table.
func Open(ctx context.Context, cfg Config) (*Sink, error) {
	sdkLog := sdklogger.New(sdkHandler())
	codec := surrealcbor.New()

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			return gorillaws.New(&connection.Config{
				BaseURL:     cfg.URL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLog,
			}), nil
		},
		5*time.Second,
		codec,
		sdkLog,
	)

	logger.Info("surreal: connecting to %s", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	if _, err := surrealdb.Query[any](ctx, db, schemaSQL, nil); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Sink{conn: conn, db: db}, nil
}

// InsertOne stores doc unless its id is already present.
func (s *Sink) InsertOne(ctx context.Context, doc domain.Document) error {
	return s.InsertMany(ctx, []domain.Document{doc})
}

// InsertMany stores docs in one statement, ignoring existing ids.
func (s *Sink) InsertMany(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	records := make([]map[string]any, len(docs))
	for i, doc := range docs {
		records[i] = record(doc)
	}

	_, err := surrealdb.Query[any](ctx, s.db, "INSERT IGNORE INTO raw_comments $docs", map[string]any{
		"docs": records,
	})
	if err != nil {
		return fmt.Errorf("insert raw_comments: %w", err)
	}
	return nil
}

// Count returns the number of records in raw_comments.
func (s *Sink) Count(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		Count int `json:"count"`
	}](ctx, s.db, "SELECT count() AS count FROM raw_comments GROUP ALL", nil)
	if err != nil {
		return 0, fmt.Errorf("count raw_comments: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].Count, nil
}

// Text returns the stored text of the record with id.
func (s *Sink) Text(ctx context.Context, id string) (string, error) {
	results, err := surrealdb.Query[[]struct {
		Text string `json:"text"`
	}](ctx, s.db, `SELECT text FROM type::record("raw_comments", $id)`, map[string]any{"id": id})
	if err != nil {
		return "", fmt.Errorf("select %s: %w", id, err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return "", nil
	}
	return (*results)[0].Result[0].Text, nil
}

// Close closes the connection.
func (s *Sink) Close() error {
	return s.conn.Close(context.Background())
}

func record(doc domain.Document) map[string]any {
	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return map[string]any{
		"id":                 doc.ID,
		"platform":           string(doc.Platform),
		"scraper":            doc.Scraper,
		"scrape_run_id":      doc.ScrapeRunID,
		"scraped_at":         doc.ScrapedAt.UTC(),
		"source_url":         doc.SourceURL,
		"post_type":          string(doc.PostType),
		"author_handle_hash": doc.AuthorHandleHash,
		"text":               doc.Text,
		"language":           doc.Language,
		"metadata":           metadata,
	}
}

// sdkHandler routes driver logs to stderr in verbose mode only.
func sdkHandler() slog.Handler {
	if logger.IsVerbose() {
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewTextHandler(io.Discard, nil)
}
