package twitter

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Source = (*Connector)(nil)

const (
	// DefaultMaxTweets is the number of tweets read per query.
	DefaultMaxTweets = 200

	// RequestDelay spaces consecutive search calls.
	RequestDelay = 50 * time.Millisecond
)

// Connector fetches tweets.
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
	client, err := NewClient(creds.Twitter.BearerToken, "", pager.NewHTTPClient(creds.HTTPTimeout, ""))
	if err != nil {
		return nil, err
	}
	return New(client, pager.NewPacer(RequestDelay)), nil
}

// Platform returns the platform identifier.
func (c *Connector) Platform() domain.Platform {
	return domain.PlatformTwitter
}

// DefaultBounds returns 200 tweets per query. Tweets have no children.
func (c *Connector) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: DefaultMaxTweets}
}

// Fetch streams tweets for every query until MaxItems are read or the
// results run out. Any failure while streaming is fatal.
func (c *Connector) Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	if criteria.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	bounds = bounds.WithDefaults(c.DefaultBounds())

	var docs []domain.Document
	for _, query := range criteria.Targets {
		logger.Section("twitter search: " + query)

		stream := pager.NewPagedStream(c.searchPage(run, query, bounds.MaxItems), c.pacer)
		tweets, err := pager.Take[domain.Document](ctx, stream, bounds.MaxItems)
		if err != nil {
			return nil, pager.ConnectionError("search "+query, err)
		}
		logger.Debug("twitter: %d tweets for %q", len(tweets), query)
		docs = append(docs, tweets...)
	}
	return docs, nil
}

func (c *Connector) searchPage(run domain.Run, query string, limit int) pager.PageFunc[domain.Document] {
	return func(ctx context.Context, token string) (pager.Page[domain.Document], error) {
		resp, err := c.client.Search(ctx, query, limit, token)
		if err != nil {
			return pager.Page[domain.Document]{}, err
		}

		users := make(map[string]string, len(resp.Includes.Users))
		for _, u := range resp.Includes.Users {
			users[u.ID] = u.Username
		}

		page := pager.Page[domain.Document]{Next: resp.Meta.NextToken}
		for _, tw := range resp.Data {
			rec := toRecord(tw, users[tw.AuthorID])
			page.Items = append(page.Items, domain.NewDocument(rec, run.ID, c.now()))
		}
		return page, nil
	}
}

// toRecord maps a tweet. The username only feeds the hash and the link.
func toRecord(tw Tweet, username string) domain.Record {
	return domain.Record{
		Platform:     domain.PlatformTwitter,
		PostType:     domain.PostTweet,
		NativeID:     tw.ID,
		SourceURL:    tweetURL(username, tw.ID),
		AuthorHandle: username,
		Text:         tw.Text,
		Language:     tw.Lang,
		Metadata: map[string]any{
			"replyCount":   tw.PublicMetrics.ReplyCount,
			"retweetCount": tw.PublicMetrics.RetweetCount,
			"likeCount":    tw.PublicMetrics.LikeCount,
			"quoteCount":   tw.PublicMetrics.QuoteCount,
			"created_at":   tw.CreatedAt,
		},
	}
}

func tweetURL(username, id string) string {
	if username == "" {
		return fmt.Sprintf("https://twitter.com/i/web/status/%s", id)
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", username, id)
}
