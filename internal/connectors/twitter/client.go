package twitter

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
)

const (
	// DefaultBaseURL is the API v2 host.
	DefaultBaseURL = "https://api.twitter.com"

	searchPath = "/2/tweets/search/recent"

	minPageSize = 10
	maxPageSize = 100
)

// ErrMissingToken is returned when no bearer token is configured.
var ErrMissingToken = errors.New("twitter: bearer token required")

// Client performs app-authenticated API v2 calls.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient wraps base with a static bearer token.
func NewClient(bearerToken, baseURL string, base *http.Client) (*Client, error) {
	if bearerToken == "" {
		return nil, ErrMissingToken
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if base == nil {
		base = pager.NewHTTPClient(0, "")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearerToken, TokenType: "Bearer"})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = base.Timeout

	return &Client{http: tc, baseURL: baseURL}, nil
}

// SearchResponse is one page of recent search results.
type SearchResponse struct {
	Data     []Tweet `json:"data"`
	Includes struct {
		Users []User `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

// Tweet is a search hit with the requested fields.
type Tweet struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	Lang          string  `json:"lang"`
	AuthorID      string  `json:"author_id"`
	CreatedAt     string  `json:"created_at"`
	PublicMetrics Metrics `json:"public_metrics"`
}

// Metrics are the public engagement counters.
type Metrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

// User is an expanded author.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Search fetches one page of recent tweets matching query.
func (c *Client) Search(ctx context.Context, query string, pageSize int, nextToken string) (*SearchResponse, error) {
	pageSize = max(minPageSize, min(pageSize, maxPageSize))

	q := url.Values{}
	q.Set("query", query)
	q.Set("max_results", strconv.Itoa(pageSize))
	q.Set("tweet.fields", "lang,public_metrics,created_at,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username")
	if nextToken != "" {
		q.Set("next_token", nextToken)
	}

	var resp SearchResponse
	if err := pager.GetJSON(ctx, c.http, c.baseURL+searchPath+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
