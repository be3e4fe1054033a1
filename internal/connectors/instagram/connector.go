package instagram

import (
	"context"
	"time"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Source = (*Connector)(nil)

const (
	// DefaultMaxPosts is the number of recent posts read per profile.
	DefaultMaxPosts = 3

	// DefaultMaxComments is the number of comments kept per post.
	DefaultMaxComments = 30

	// RequestDelay spaces consecutive API calls.
	RequestDelay = time.Second
)

// Connector fetches Instagram comments.
type Connector struct {
	client *Client
	pacer  *pager.Pacer
	now    func() time.Time
}

// New creates a connector around a client.
func New(client *Client, pacer *pager.Pacer) *Connector {
	return &Connector{client: client, pacer: pacer, now: time.Now}
}

// NewSource builds a connector from the process credentials.
func NewSource(creds domain.Credentials) (driven.Source, error) {
	client := NewClient(Config{
		AppID:     creds.Instagram.AppID,
		SessionID: creds.Instagram.SessionID,
	}, pager.NewHTTPClient(creds.HTTPTimeout, ""))
	return New(client, pager.NewPacer(RequestDelay)), nil
}

// Platform returns the platform identifier.
func (c *Connector) Platform() domain.Platform {
	return domain.PlatformInstagram
}

// DefaultBounds returns 3 posts and 30 comments per post.
func (c *Connector) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: DefaultMaxPosts, MaxChildren: DefaultMaxComments}
}

// Fetch reads recent posts of every profile and their comments.
// A profile that cannot be resolved or whose feed fails is fatal.
func (c *Connector) Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	if criteria.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	bounds = bounds.WithDefaults(c.DefaultBounds())

	var docs []domain.Document
	for _, name := range criteria.Targets {
		logger.Section("instagram @" + name)

		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		profile, err := c.client.Profile(ctx, name)
		if err != nil {
			return nil, pager.ConnectionError("profile "+name, err)
		}

		posts, err := pager.Paginate(ctx, c.feedPage(profile.ID), bounds.MaxItems, c.pacer)
		if err != nil {
			return nil, pager.ConnectionError("feed of "+name, err)
		}
		logger.Debug("instagram: %d posts for @%s", len(posts), name)

		comments, err := pager.Harvest(ctx, domain.PlatformInstagram, posts,
			func(p Post) string { return "post " + p.Code },
			bounds.MaxChildren,
			func(ctx context.Context, p Post, limit int) ([]domain.Document, error) {
				return c.fetchComments(ctx, run, name, p, limit)
			})
		docs = append(docs, comments...)
		if err != nil {
			return docs, err
		}
	}
	return docs, nil
}

func (c *Connector) feedPage(userID string) pager.PageFunc[Post] {
	return func(ctx context.Context, maxID string) (pager.Page[Post], error) {
		resp, err := c.client.Feed(ctx, userID, maxID)
		if err != nil {
			return pager.Page[Post]{}, err
		}
		page := pager.Page[Post]{Items: resp.Items}
		if resp.MoreAvailable {
			page.Next = resp.NextMaxID
		}
		return page, nil
	}
}

func (c *Connector) fetchComments(ctx context.Context, run domain.Run, profile string, post Post, limit int) ([]domain.Document, error) {
	fetch := func(ctx context.Context, minID string) (pager.Page[domain.Document], error) {
		resp, err := c.client.Comments(ctx, string(post.PK), minID)
		if err != nil {
			return pager.Page[domain.Document]{}, err
		}
		page := pager.Page[domain.Document]{Next: resp.NextMinID}
		for _, cm := range resp.Comments {
			page.Items = append(page.Items, domain.NewDocument(toRecord(profile, post, cm), run.ID, c.now()))
		}
		return page, nil
	}
	return pager.Paginate(ctx, fetch, limit, c.pacer)
}

// toRecord maps a comment. Comments without a pk get a surrogate id
// derived from the post shortcode and the text.
func toRecord(profile string, post Post, cm Comment) domain.Record {
	meta := map[string]any{
		"post_shortcode": post.Code,
		"profile":        profile,
		"caption":        post.CaptionText(),
	}
	if cm.CreatedAt > 0 {
		meta["created_at"] = time.Unix(cm.CreatedAt, 0).UTC().Format(time.RFC3339)
	}

	return domain.Record{
		Platform:     domain.PlatformInstagram,
		PostType:     domain.PostComment,
		NativeID:     string(cm.PK),
		ParentID:     post.Code,
		SourceURL:    "https://www.instagram.com/p/" + post.Code + "/",
		AuthorHandle: cm.Username(),
		Text:         cm.Text,
		Metadata:     meta,
	}
}
