package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

const (
	// DefaultBaseURL is the OAuth API host.
	DefaultBaseURL = "https://oauth.reddit.com"

	// DefaultTokenURL issues app-only tokens.
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	// maxListingSize is the largest page a listing endpoint returns.
	maxListingSize = 100

	// commentDepthLimit bounds how many comments one tree request returns.
	commentDepthLimit = 500
)

// ErrMissingCredentials is returned when the client id or secret is unset.
var ErrMissingCredentials = errors.New("reddit: client id and secret required")

// Config holds connection settings for the Reddit API.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	TokenURL     string
}

// Client performs authenticated Reddit API calls.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client whose transport fetches and refreshes an
// app-only token on demand. The base client provides the timeout and user
// agent for both token and API requests; nil builds one from cfg.UserAgent.
func NewClient(cfg Config, base *http.Client) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if base == nil {
		base = pager.NewHTTPClient(0, cfg.UserAgent)
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authed := cc.Client(ctx)
	authed.Timeout = base.Timeout

	return &Client{http: authed, baseURL: cfg.BaseURL}, nil
}

// Hot returns one page of a subreddit's hot listing.
func (c *Client) Hot(ctx context.Context, subreddit string, limit int, after string) (*Listing, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(min(limit, maxListingSize)))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}

	var listing Listing
	u := fmt.Sprintf("%s/r/%s/hot?%s", c.baseURL, url.PathEscape(subreddit), q.Encode())
	if err := pager.GetJSON(ctx, c.http, u, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Comments returns the comment tree of a post. The response is a pair of
// listings: the post itself, then its top-level comments.
func (c *Client) Comments(ctx context.Context, subreddit, postID string) (*Listing, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(commentDepthLimit))
	q.Set("raw_json", "1")

	var pair []Listing
	u := fmt.Sprintf("%s/r/%s/comments/%s?%s", c.baseURL, url.PathEscape(subreddit), url.PathEscape(postID), q.Encode())
	if err := pager.GetJSON(ctx, c.http, u, nil, &pair); err != nil {
		return nil, err
	}
	if len(pair) < 2 {
		return nil, fmt.Errorf("%w: comment response has %d listings", domain.ErrInvalidInput, len(pair))
	}
	return &pair[1], nil
}
