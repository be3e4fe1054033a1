package pager

import (
	"context"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// ChildFunc fetches and maps up to limit children of one top-level item.
type ChildFunc[P any] func(ctx context.Context, parent P, limit int) ([]domain.Document, error)

// Harvest runs fetch for every parent and concatenates the results.
// A failing parent is logged and skipped, keeping whatever children it
// yielded before failing. Only context cancellation stops the loop early.
func Harvest[P any](
	ctx context.Context,
	platform domain.Platform,
	parents []P,
	label func(P) string,
	limit int,
	fetch ChildFunc[P],
) ([]domain.Document, error) {
	var docs []domain.Document
	for _, parent := range parents {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		children, err := fetch(ctx, parent, limit)
		if err != nil {
			if ctx.Err() != nil {
				return docs, ctx.Err()
			}
			logger.Warn("%s: skipping %s: %v", platform, label(parent), err)
		}
		if len(children) > limit {
			children = children[:limit]
		}
		logger.Debug("%s: %s -> %d documents", platform, label(parent), len(children))
		docs = append(docs, children...)
	}
	return docs, nil
}
