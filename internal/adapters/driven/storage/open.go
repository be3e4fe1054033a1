package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage/mongodb"
	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage/surreal"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Kind names a sink implementation.
type Kind string

const (
	KindSQLite  Kind = "sqlite"
	KindSurreal Kind = "surreal"
	KindMongo   Kind = "mongodb"
	KindMemory  Kind = "memory"
)

// Resolve maps a datastore URI to the sink kind that serves it.
func Resolve(uri string) (Kind, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: datastore uri: %w", domain.ErrConfig, err)
	}

	switch u.Scheme {
	case "sqlite", "file":
		return KindSQLite, nil
	case "ws", "wss", "http", "https":
		return KindSurreal, nil
	case "mongodb", "mongodb+srv":
		return KindMongo, nil
	case "memory":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("%w: unsupported datastore scheme %q", domain.ErrConfig, u.Scheme)
	}
}

// Open connects the sink named by uri. database names the SurrealDB database
// or MongoDB database; it is ignored by the other kinds.
func Open(ctx context.Context, uri, database string) (driven.DocumentSink, error) {
	kind, err := Resolve(uri)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage: opening %s sink", kind)

	switch kind {
	case KindSQLite:
		path, err := sqlitePath(uri)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil

	case KindSurreal:
		cfg, err := surreal.ConfigFromURI(uri, database)
		if err != nil {
			return nil, err
		}
		sink, err := surreal.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("surreal: %w", err)
		}
		return sink, nil

	case KindMongo:
		sink, err := mongodb.Open(ctx, uri, database)
		if err != nil {
			return nil, fmt.Errorf("mongodb: %w", err)
		}
		return sink, nil

	default:
		return memory.NewSink(), nil
	}
}

// sqlitePath extracts the file path from sqlite:///abs, sqlite://rel or
// file:rel.
func sqlitePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: datastore uri: %w", domain.ErrConfig, err)
	}

	path := u.Opaque
	if path == "" {
		path = u.Host + u.Path
	}
	if path == "" {
		return "", fmt.Errorf("%w: sqlite uri %q has no path", domain.ErrConfig, uri)
	}
	return path, nil
}
