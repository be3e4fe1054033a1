package youtube

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/insight-scraper/internal/connectors/google"
	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
	"github.com/custodia-labs/insight-scraper/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Source = (*Connector)(nil)

const (
	// DefaultMaxVideos is the number of videos searched per query.
	DefaultMaxVideos = 10

	// DefaultMaxComments is the number of comments kept per video.
	DefaultMaxComments = 50

	// PageDelay spaces consecutive API calls.
	PageDelay = time.Second

	// searchPageSize is the largest page search.list accepts.
	searchPageSize = 50

	// commentPageSize is the largest page commentThreads.list accepts.
	commentPageSize = 100
)

// ErrMissingAPIKey is returned when no developer key is configured.
var ErrMissingAPIKey = errors.New("youtube: API key required")

// Connector fetches YouTube comments.
type Connector struct {
	svc   *youtube.Service
	pacer *pager.Pacer
	now   func() time.Time
}

// New creates a connector around an existing service.
func New(svc *youtube.Service, pacer *pager.Pacer) *Connector {
	return &Connector{svc: svc, pacer: pacer, now: time.Now}
}

// NewSource builds a connector from the process credentials.
func NewSource(creds domain.Credentials) (driven.Source, error) {
	if creds.YouTube.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	client := pager.NewHTTPClient(creds.HTTPTimeout, "")
	svc, err := google.NewYouTubeService(context.Background(), creds.YouTube.APIKey, client)
	if err != nil {
		return nil, err
	}
	return New(svc, pager.NewPacer(PageDelay)), nil
}

// Platform returns the platform identifier.
func (c *Connector) Platform() domain.Platform {
	return domain.PlatformYouTube
}

// DefaultBounds returns 10 videos and 50 comments per video.
func (c *Connector) DefaultBounds() domain.Bounds {
	return domain.Bounds{MaxItems: DefaultMaxVideos, MaxChildren: DefaultMaxComments}
}

// Fetch searches every query and harvests comments from each video found.
// A failing search is fatal; a failing video is skipped.
func (c *Connector) Fetch(ctx context.Context, run domain.Run, criteria domain.Criteria, bounds domain.Bounds) ([]domain.Document, error) {
	if criteria.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	bounds = bounds.WithDefaults(c.DefaultBounds())

	var docs []domain.Document
	for _, query := range criteria.Targets {
		logger.Section("youtube search: " + query)

		videos, err := pager.Paginate(ctx, c.searchPage(query, bounds.MaxItems), bounds.MaxItems, c.pacer)
		if err != nil {
			return nil, pager.ConnectionError("search "+query, google.WrapError(err))
		}
		logger.Debug("youtube: %d videos for %q", len(videos), query)

		comments, err := pager.Harvest(ctx, domain.PlatformYouTube, videos,
			func(v video) string { return "video " + v.ID },
			bounds.MaxChildren,
			func(ctx context.Context, v video, limit int) ([]domain.Document, error) {
				return c.fetchComments(ctx, run, v, limit)
			})
		docs = append(docs, comments...)
		if err != nil {
			return docs, err
		}
	}
	return docs, nil
}

// video is the slice of a search result the comments harvest needs.
type video struct {
	ID    string
	Title string
}

func (c *Connector) searchPage(query string, limit int) pager.PageFunc[video] {
	size := int64(min(limit, searchPageSize))
	return func(ctx context.Context, token string) (pager.Page[video], error) {
		call := c.svc.Search.List([]string{"id", "snippet"}).
			Q(query).
			Type("video").
			MaxResults(size).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		resp, err := call.Do()
		if err != nil {
			return pager.Page[video]{}, err
		}

		page := pager.Page[video]{Next: resp.NextPageToken}
		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			v := video{ID: item.Id.VideoId}
			if item.Snippet != nil {
				v.Title = item.Snippet.Title
			}
			page.Items = append(page.Items, v)
		}
		return page, nil
	}
}

func (c *Connector) fetchComments(ctx context.Context, run domain.Run, v video, limit int) ([]domain.Document, error) {
	fetch := func(ctx context.Context, token string) (pager.Page[domain.Document], error) {
		call := c.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(v.ID).
			MaxResults(commentPageSize).
			TextFormat("plainText").
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		resp, err := call.Do()
		if err != nil {
			return pager.Page[domain.Document]{}, google.WrapError(err)
		}

		page := pager.Page[domain.Document]{Next: resp.NextPageToken}
		for _, thread := range resp.Items {
			rec, ok := toRecord(v, thread)
			if !ok {
				continue
			}
			page.Items = append(page.Items, domain.NewDocument(rec, run.ID, c.now()))
		}
		return page, nil
	}
	return pager.Paginate(ctx, fetch, limit, c.pacer)
}
