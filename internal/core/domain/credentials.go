package domain

import "time"

// Credentials holds the per-platform secrets the connectors need.
// Platforms that work anonymously (Play Store, Instagram public profiles)
// have only optional fields.
type Credentials struct {
	Reddit    RedditCredentials
	YouTube   YouTubeCredentials
	Twitter   TwitterCredentials
	Instagram InstagramCredentials

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration
}

// RedditCredentials are the script-app credentials for app-only OAuth.
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// YouTubeCredentials hold the Data API developer key.
type YouTubeCredentials struct {
	APIKey string
}

// TwitterCredentials hold the API v2 app bearer token.
type TwitterCredentials struct {
	BearerToken string
}

// InstagramCredentials are optional; a session id widens what public
// endpoints return.
type InstagramCredentials struct {
	SessionID string
	AppID     string
}
