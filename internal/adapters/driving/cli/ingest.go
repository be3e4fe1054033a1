package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

// runIngest executes one ingestion and reports where the batch went.
// The snapshot path is printed even when the datastore insert failed.
func runIngest(cmd *cobra.Command, platform domain.Platform, targets string, bounds domain.Bounds, noun string) error {
	criteria := domain.ParseCriteria(targets)
	if criteria.IsEmpty() {
		return fmt.Errorf("%w: at least one target is required", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	return withRuntime(ctx, platform, func(rt *Runtime) error {
		result, err := rt.Ingestor.Ingest(ctx, driving.IngestRequest{
			Platform: platform,
			Criteria: criteria,
			Bounds:   bounds,
		})
		if result != nil {
			cmd.Printf("Saved %d %s to %s\n", result.Count(), noun, result.SnapshotPath)
		}
		if err != nil {
			return fmt.Errorf("%s ingestion failed: %w", platform, err)
		}
		return nil
	})
}
