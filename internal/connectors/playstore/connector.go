package playstore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Source = (*Connector)(nil)

const (
	// DefaultMaxReviews is the number of reviews kept per app.
	DefaultMaxReviews = 200

	// RequestDelay spaces consecutive store calls.
	RequestDelay = time.Second
)

// Connector fetches Play Store reviews.
type Connector struct {
	client *Client
	pacer  *pager.Pacer
	now    func() time.Time
}

// New creates a connector around a client.
func New(client *Client, pacer *pager.Pacer) *Connector {
	return &Connector{client: client, pacer: pacer, now: time.Now}
}

// NewSource builds a connector. The store needs no credentials.
func NewSource(creds domain.Credentials) (driven.Source, error) {
	client := NewClient(Config{}, pager.NewHTTPClient(creds.HTTPTimeout, ""))
	return New(client, pager.NewPacer(RequestDelay)), nil
}

// Platform returns the platform identifier.
func (c *Connector) Platform() domain.Platform {
	return domain.PlatformPlayStore
}

// DefaultBounds returns one app per target and 200 reviews per app.
func (c *Connector) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: 1, MaxChildren: DefaultMaxReviews}
}

// Fetch resolves every app id and pages its newest reviews.
// An app that cannot be resolved is fatal; a failing review page keeps the
// reviews read so far.
func (c *Connector) Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	if criteria.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	bounds = bounds.WithDefaults(c.DefaultBounds())

	apps := make([]App, 0, len(criteria.Targets))
	for _, id := range criteria.Targets {
		logger.Section("playstore " + id)

		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		app, err := c.client.LookupApp(ctx, id)
		if err != nil {
			return nil, pager.ConnectionError("app "+id, err)
		}
		logger.Debug("playstore: %s is %q", id, app.Title)
		apps = append(apps, *app)
	}

	return pager.Harvest(ctx, domain.PlatformPlayStore, apps,
		func(a App) string { return "app " + a.ID },
		bounds.MaxChildren,
		func(ctx context.Context, a App, limit int) ([]domain.Document, error) {
			return c.fetchReviews(ctx, run, a, limit)
		})
}

func (c *Connector) fetchReviews(ctx context.Context, run domain.Run, app App, limit int) ([]domain.Document, error) {
	fetch := func(ctx context.Context, token string) (pager.Page[domain.Document], error) {
		resp, err := c.client.Reviews(ctx, app.ID, limit, token)
		if err != nil {
			return pager.Page[domain.Document]{}, err
		}
		page := pager.Page[domain.Document]{Next: resp.Token}
		for _, r := range resp.Reviews {
			page.Items = append(page.Items, domain.NewDocument(toRecord(app, r), run.ID, c.now()))
		}
		return page, nil
	}
	return pager.Paginate(ctx, fetch, limit, c.pacer)
}

// toRecord maps a review. The reviewer's name feeds only the hash.
func toRecord(app App, r Review) domain.Record {
	var at any
	if r.At > 0 {
		at = time.Unix(r.At, 0).UTC().Format(time.RFC3339)
	}

	return domain.Record{
		Platform:     domain.PlatformPlayStore,
		PostType:     domain.PostReview,
		NativeID:     r.ID,
		ParentID:     app.ID,
		SourceURL:    reviewURL(app.ID, r.ID),
		AuthorHandle: r.UserName,
		Text:         r.Content,
		Metadata: map[string]any{
			"app_id":        app.ID,
			"app_title":     app.Title,
			"score":         r.Score,
			"at":            at,
			"thumbsUpCount": r.ThumbsUp,
			"appVersion":    r.AppVersion,
		},
	}
}

func reviewURL(appID, reviewID string) string {
	return fmt.Sprintf("https://play.google.com/store/apps/details?id=%s&reviewId=%s",
		url.QueryEscape(appID), url.QueryEscape(reviewID))
}
