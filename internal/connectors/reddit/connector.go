package reddit

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
	// DefaultMaxPosts is the number of hot posts read per subreddit.
	DefaultMaxPosts = 20

	// DefaultMaxComments is the number of comments kept per post.
	DefaultMaxComments = 200

	// PostDelay spaces consecutive API calls.
	PostDelay = time.Second

	permalinkHost = "https://reddit.com"
)

// Connector fetches Reddit comments.
type Connector struct {
	client *Client
	pacer  *pager.Pacer
	now    func() time.Time
}

// New creates a connector around an authenticated client.
func New(client *Client, pacer *pager.Pacer) *Connector {
	return &Connector{client: client, pacer: pacer, now: time.Now}
}

// NewSource builds a connector from the process credentials.
func NewSource(creds domain.Credentials) (driven.Source, error) {
	base := pager.NewHTTPClient(creds.HTTPTimeout, creds.Reddit.UserAgent)
	client, err := NewClient(Config{
		ClientID:     creds.Reddit.ClientID,
		ClientSecret: creds.Reddit.ClientSecret,
		UserAgent:    creds.Reddit.UserAgent,
	}, base)
	if err != nil {
		return nil, err
	}
	return New(client, pager.NewPacer(PostDelay)), nil
}

// Platform returns the platform identifier.
func (c *Connector) Platform() domain.Platform {
	return domain.PlatformReddit
}

// DefaultBounds returns 20 posts and 200 comments per post.
func (c *Connector) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: DefaultMaxPosts, MaxChildren: DefaultMaxComments}
}

// Fetch reads the hot listing of each subreddit and flattens every post's
// comment tree. Authentication or listing failures are fatal.
func (c *Connector) Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	if criteria.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	bounds = bounds.WithDefaults(c.DefaultBounds())

	var docs []domain.Document
	for _, sub := range criteria.Targets {
		logger.Section("reddit r/" + sub)

		posts, err := pager.Paginate(ctx, c.hotPage(sub, bounds.MaxItems), bounds.MaxItems, c.pacer)
		if err != nil {
			return nil, pager.ConnectionError("r/"+sub+" hot listing", err)
		}
		logger.Debug("reddit: %d posts in r/%s", len(posts), sub)

		comments, err := pager.Harvest(ctx, domain.PlatformReddit, posts,
			func(p Post) string { return "post " + p.ID },
			bounds.MaxChildren,
			func(ctx context.Context, p Post, limit int) ([]domain.Document, error) {
				return c.fetchComments(ctx, run, sub, p, limit)
			})
		docs = append(docs, comments...)
		if err != nil {
			return docs, err
		}
	}
	return docs, nil
}

func (c *Connector) hotPage(sub string, limit int) pager.PageFunc[Post] {
	return func(ctx context.Context, after string) (pager.Page[Post], error) {
		listing, err := c.client.Hot(ctx, sub, limit, after)
		if err != nil {
			return pager.Page[Post]{}, err
		}
		return pager.Page[Post]{Items: listing.Posts(), Next: listing.Data.After}, nil
	}
}

func (c *Connector) fetchComments(ctx context.Context, run domain.Run, sub string, post Post, limit int) ([]domain.Document, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	tree, err := c.client.Comments(ctx, sub, post.ID)
	if err != nil {
		return nil, err
	}

	comments := tree.Flatten(limit)
	docs := make([]domain.Document, 0, len(comments))
	for _, cm := range comments {
		docs = append(docs, domain.NewDocument(toRecord(sub, post, cm), run.ID, c.now()))
	}
	return docs, nil
}

// toRecord maps one comment. Deleted authors hash to the empty string.
func toRecord(sub string, post Post, cm Comment) domain.Record {
	author := cm.Author
	if author == deletedAuthor {
		author = ""
	}

	permalink := ""
	if cm.Permalink != "" {
		permalink = permalinkHost + cm.Permalink
	}

	var score, created any
	if cm.Score != nil {
		score = *cm.Score
	}
	if cm.CreatedUTC != nil {
		created = *cm.CreatedUTC
	}

	return domain.Record{
		Platform:     domain.PlatformReddit,
		PostType:     domain.PostComment,
		NativeID:     cm.ID,
		ParentID:     post.ID,
		SourceURL:    permalink,
		AuthorHandle: author,
		Text:         cm.Body,
		Metadata: map[string]any{
			"post_id":     post.ID,
			"subreddit":   sub,
			"post_title":  post.Title,
			"score":       score,
			"created_utc": created,
			"permalink":   permalink,
		},
	}
}
