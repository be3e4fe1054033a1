package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// maxLabel caps the criteria part of a file name.
const maxLabel = 64

// Writer implements driven.SnapshotWriter on the local filesystem.
type Writer struct {
	dataDir string
}

var _ driven.SnapshotWriter = (*Writer)(nil)

// NewWriter creates a writer rooted at dataDir.
func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir}
}

// Write stores docs at <dataDir>/<platform>/<platform>_raw_[<label>_]<runID>.json.
func (w *Writer) Write(ctx context.Context, platform domain.Platform, criteria domain.Criteria, runID string, docs []domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	dir := filepath.Join(w.dataDir, string(platform))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}
	path := filepath.Join(dir, FileName(platform, criteria, runID))

	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming snapshot: %w", err)
	}

	logger.Debug("snapshot: wrote %d documents to %s", len(docs), path)
	return path, nil
}

// FileName builds the snapshot file name for a run.
func FileName(platform domain.Platform, criteria domain.Criteria, runID string) string {
	var b strings.Builder
	b.WriteString(string(platform))
	b.WriteString("_raw_")
	if label := Label(criteria); label != "" {
		b.WriteString(label)
		b.WriteByte('_')
	}
	b.WriteString(runID)
	b.WriteString(".json")
	return b.String()
}

// Label turns criteria into a file-name-safe fragment: targets joined by "-",
// anything outside [A-Za-z0-9._-] replaced by "_", at most 64 bytes.
func Label(criteria domain.Criteria) string {
	joined := strings.Join(criteria.Targets, "-")
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, joined)
	if len(safe) > maxLabel {
		safe = safe[:maxLabel]
	}
	return safe
}
