package connectors

import (
	"github.com/custodia-labs/insight-scraper/internal/connectors/instagram"
	"github.com/custodia-labs/insight-scraper/internal/connectors/playstore"
	"github.com/custodia-labs/insight-scraper/internal/connectors/reddit"
	"github.com/custodia-labs/insight-scraper/internal/connectors/twitter"
	"github.com/custodia-labs/insight-scraper/internal/connectors/youtube"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

// Builders maps every supported platform to its source constructor.
func Builders() map[domain.Platform]driven.SourceBuilder {
	return map[domain.Platform]driven.SourceBuilder{
		domain.PlatformInstagram: instagram.NewSource,
		domain.PlatformPlayStore: playstore.NewSource,
		domain.PlatformReddit:    reddit.NewSource,
		domain.PlatformTwitter:   twitter.NewSource,
		domain.PlatformYouTube:   youtube.NewSource,
	}
}

// RegisterBuiltins registers every connector with the factory.
func RegisterBuiltins(factory driven.SourceFactory) {
	for platform, build := range Builders() {
		factory.Register(platform, build)
	}
}
