package domain

import "time"

// Platform identifies an external content source.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformPlayStore Platform = "playstore"
	PlatformReddit    Platform = "reddit"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
)

// Platforms lists every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{
		PlatformInstagram,
		PlatformPlayStore,
		PlatformReddit,
		PlatformTwitter,
		PlatformYouTube,
	}
}

// ParsePlatform converts a user supplied name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrUnsupportedPlatform
}

// Scraper returns the provenance name stamped on documents from this platform.
func (p Platform) Scraper() string {
	return string(p) + "_scraper"
}

// PostType is the coarse kind of content a document carries.
type PostType string

const (
	PostComment PostType = "comment"
	PostReview  PostType = "review"
	PostTweet   PostType = "tweet"
)

// DefaultLanguage is used when a source does not report a language.
const DefaultLanguage = "en"

// Document is the canonical representation of one ingested item.
// Documents are immutable once created; re-ingesting the same item yields
// a new Document with the same ID.
type Document struct {
	// ID is "{platform}_{native id}" or a surrogate derived from the parent and text.
	ID string `json:"id" bson:"_id"`

	// Platform is the origin source.
	Platform Platform `json:"platform" bson:"platform"`

	// Scraper is the adapter that produced the document.
	Scraper string `json:"scraper" bson:"scraper"`

	// ScrapeRunID identifies the orchestrator invocation.
	ScrapeRunID string `json:"scrape_run_id" bson:"scrape_run_id"`

	// ScrapedAt is the UTC ingestion time.
	ScrapedAt time.Time `json:"scraped_at" bson:"scraped_at"`

	// SourceURL deep-links to the original item.
	SourceURL string `json:"source_url" bson:"source_url"`

	PostType PostType `json:"post_type" bson:"post_type"`

	// AuthorHandleHash is the SHA-256 of the author's handle, or empty.
	AuthorHandleHash string `json:"author_handle_hash" bson:"author_handle_hash"`

	// Text is the user generated body. Never null in JSON.
	Text string `json:"text" bson:"text"`

	Language string `json:"language" bson:"language"`

	// Metadata holds source specific fields that are not promoted.
	Metadata map[string]any `json:"metadata" bson:"metadata"`
}

// Record is the uniform shape connectors convert their native records into.
// NewDocument is the only place a Record becomes a Document.
type Record struct {
	Platform Platform
	PostType PostType

	// NativeID is the source's stable id. May be empty.
	NativeID string

	// ParentID identifies the containing post, video or app.
	// It seeds the surrogate id when NativeID is empty.
	ParentID string

	SourceURL    string
	AuthorHandle string
	Text         string
	Language     string
	Metadata     map[string]any
}

// NewDocument maps a Record into a Document stamped with the run's identity.
func NewDocument(rec Record, runID string, scrapedAt time.Time) Document {
	lang := rec.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	metadata := make(map[string]any, len(rec.Metadata)+1)
	for k, v := range rec.Metadata {
		metadata[k] = v
	}
	if _, ok := metadata["id"]; !ok {
		if rec.NativeID != "" {
			metadata["id"] = rec.NativeID
		} else {
			metadata["id"] = SurrogateID(rec.ParentID, rec.Text)
		}
	}

	return Document{
		ID:               DeriveID(rec.Platform, rec.NativeID, rec.ParentID, rec.Text),
		Platform:         rec.Platform,
		Scraper:          rec.Platform.Scraper(),
		ScrapeRunID:      runID,
		ScrapedAt:        scrapedAt.UTC(),
		SourceURL:        rec.SourceURL,
		PostType:         rec.PostType,
		AuthorHandleHash: HashAuthor(rec.AuthorHandle),
		Text:             rec.Text,
		Language:         lang,
		Metadata:         metadata,
	}
}
