package config

import (
	"time"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// Defaults.
const (
	DefaultDatabase    = "insights_db"
	DefaultUserAgent   = "insight-scraper/0.1"
	DefaultDataDir     = "data/raw"
	DefaultHTTPTimeout = 30 * time.Second
)

// Settings is the resolved process configuration. The env tag names the
// variable reported when validation fails.
type Settings struct {
	Datastore DatastoreSettings
	Reddit    RedditSettings
	YouTube   YouTubeSettings
	Twitter   TwitterSettings
	Instagram InstagramSettings

	DataDir     string        `env:"INSIGHT_DATA_DIR"`
	HTTPTimeout time.Duration `env:"INSIGHT_HTTP_TIMEOUT"`
}

// DatastoreSettings select and address the shared datastore.
type DatastoreSettings struct {
	URI      string `env:"DATASTORE_URI" validate:"required,datastore_uri"`
	Database string `env:"DATASTORE_DB" validate:"required"`
}

// RedditSettings are the script-app credentials.
type RedditSettings struct {
	ClientID     string `env:"REDDIT_CLIENT_ID" validate:"required"`
	ClientSecret string `env:"REDDIT_CLIENT_SECRET" validate:"required"`
	UserAgent    string `env:"REDDIT_USER_AGENT" validate:"required"`
}

// YouTubeSettings hold the Data API key.
type YouTubeSettings struct {
	APIKey string `env:"YOUTUBE_API_KEY" validate:"required"`
}

// TwitterSettings hold the API v2 bearer token.
type TwitterSettings struct {
	BearerToken string `env:"TWITTER_BEARER_TOKEN" validate:"required"`
}

// InstagramSettings are optional.
type InstagramSettings struct {
	SessionID string `env:"INSTAGRAM_SESSION_ID"`
	AppID     string `env:"INSTAGRAM_APP_ID"`
}

// Defaults returns settings with every default applied.
func Defaults() *Settings {
	return &Settings{
		Datastore:   DatastoreSettings{Database: DefaultDatabase},
		Reddit:      RedditSettings{UserAgent: DefaultUserAgent},
		DataDir:     DefaultDataDir,
		HTTPTimeout: DefaultHTTPTimeout,
	}
}

// Credentials projects the platform secrets into the domain type.
func (s *Settings) Credentials() domain.Credentials {
	return domain.Credentials{
		Reddit: domain.RedditCredentials{
			ClientID:     s.Reddit.ClientID,
			ClientSecret: s.Reddit.ClientSecret,
			UserAgent:    s.Reddit.UserAgent,
		},
		YouTube:     domain.YouTubeCredentials{APIKey: s.YouTube.APIKey},
		Twitter:     domain.TwitterCredentials{BearerToken: s.Twitter.BearerToken},
		Instagram:   domain.InstagramCredentials{SessionID: s.Instagram.SessionID, AppID: s.Instagram.AppID},
		HTTPTimeout: s.HTTPTimeout,
	}
}
