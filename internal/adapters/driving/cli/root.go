// Package cli provides the cobra command tree for the insight binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/config"
	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/insight-scraper/internal/adapters/driven/storage"
	"github.com/custodia-labs/insight-scraper/internal/connectors"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
	"github.com/custodia-labs/insight-scraper/internal/core/services"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

var (
	version = "dev"

	verbose    bool
	configPath string
	dataDir    string
)

// Runtime is the wired ingestion stack for one command invocation.
type Runtime struct {
	Ingestor  driving.Ingestor
	Platforms []domain.Platform

	// Close releases the datastore connection.
	Close func() error
}

// bootstrap builds the runtime. An empty platform validates only the
// common settings. Tests replace it.
var bootstrap = defaultBootstrap

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Ingest public social and app store content",
	Long: `insight fetches public comments, reviews and posts from Instagram,
the Google Play Store, Reddit, Twitter/X and YouTube, normalises them into one
document schema with hashed author handles, and stores every run as a local
JSON snapshot and in the configured datastore.

Configuration comes from environment variables (DATASTORE_URI, DATASTORE_DB,
REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USER_AGENT, YOUTUBE_API_KEY,
TWITTER_BEARER_TOKEN, INSTAGRAM_SESSION_ID, INSTAGRAM_APP_ID, INSIGHT_DATA_DIR,
INSIGHT_HTTP_TIMEOUT), optionally layered over a TOML or YAML file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .toml or .yaml config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "snapshot directory (overrides INSIGHT_DATA_DIR)")
}

// Execute runs the command tree with the given build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

func defaultBootstrap(ctx context.Context, platform domain.Platform) (*Runtime, error) {
	settings, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	if dataDir != "" {
		settings.DataDir = dataDir
	}
	if err := settings.Validate(platform); err != nil {
		return nil, err
	}

	sink, err := storage.Open(ctx, settings.Datastore.URI, settings.Datastore.Database)
	if err != nil {
		return nil, fmt.Errorf("opening datastore: %w", err)
	}

	registry := services.NewSourceRegistry(settings.Credentials())
	connectors.RegisterBuiltins(registry)

	writer := services.NewSinkWriter(snapshot.NewWriter(settings.DataDir), sink)
	return &Runtime{
		Ingestor:  services.NewIngestService(registry, services.NewRunIDs(), writer),
		Platforms: registry.SupportedPlatforms(),
		Close:     sink.Close,
	}, nil
}

// withRuntime bootstraps, runs fn and closes the datastore afterwards.
func withRuntime(ctx context.Context, platform domain.Platform, fn func(*Runtime) error) error {
	rt, err := bootstrap(ctx, platform)
	if err != nil {
		return err
	}
	if rt.Close != nil {
		defer func() {
			if cerr := rt.Close(); cerr != nil {
				logger.Warn("closing datastore: %v", cerr)
			}
		}()
	}
	return fn(rt)
}
