package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

const insertSQL = `
	INSERT INTO raw_comments (
		id, platform, scraper, scrape_run_id, scraped_at, source_url,
		post_type, author_handle_hash, text, language, metadata
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING
`

// Store is a DocumentSink backed by a single SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DocumentSink = (*Store)(nil)

// NewStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: sqlite path is empty", domain.ErrConfig)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InsertOne stores doc unless its id is already present.
func (s *Store) InsertOne(ctx context.Context, doc domain.Document) error {
	return s.InsertMany(ctx, []domain.Document{doc})
}

// InsertMany stores docs in one transaction. Existing ids are skipped.
func (s *Store) InsertMany(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		metadata := doc.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", doc.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			doc.ID,
			string(doc.Platform),
			doc.Scraper,
			doc.ScrapeRunID,
			doc.ScrapedAt.UTC().Format(time.RFC3339Nano),
			doc.SourceURL,
			string(doc.PostType),
			doc.AuthorHandleHash,
			doc.Text,
			doc.Language,
			string(metadataJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get returns the stored document with id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, platform, scraper, scrape_run_id, scraped_at, source_url,
		       post_type, author_handle_hash, text, language, metadata
		FROM raw_comments WHERE id = ?
	`, id)

	var (
		doc          domain.Document
		platform     string
		postType     string
		scrapedAt    string
		metadataJSON string
	)
	err := row.Scan(&doc.ID, &platform, &doc.Scraper, &doc.ScrapeRunID, &scrapedAt,
		&doc.SourceURL, &postType, &doc.AuthorHandleHash, &doc.Text, &doc.Language, &metadataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", id, err)
	}

	doc.Platform = domain.Platform(platform)
	doc.PostType = domain.PostType(postType)
	if doc.ScrapedAt, err = time.Parse(time.RFC3339Nano, scrapedAt); err != nil {
		return nil, fmt.Errorf("parsing scraped_at of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling metadata of %s: %w", id, err)
	}
	return &doc, nil
}

// Count returns the number of stored documents, limited to one run when
// runID is set.
func (s *Store) Count(ctx context.Context, runID string) (int, error) {
	query := "SELECT COUNT(*) FROM raw_comments"
	var args []any
	if runID != "" {
		query += " WHERE scrape_run_id = ?"
		args = append(args, runID)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_raw_comments.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
