package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
)

const (
	// DefaultBaseURL is the web API host.
	DefaultBaseURL = "https://i.instagram.com"

	// DefaultAppID is the public web client's application id.
	DefaultAppID = "936619743392459"

	feedPageSize = 12
)

// Client performs Instagram web API calls.
type Client struct {
	http      *http.Client
	baseURL   string
	appID     string
	sessionID string
}

// Config holds connection settings for the web API.
type Config struct {
	BaseURL   string
	AppID     string
	SessionID string
}

// NewClient creates a client. Missing settings fall back to the public web
// client's defaults.
func NewClient(cfg Config, base *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AppID == "" {
		cfg.AppID = DefaultAppID
	}
	if base == nil {
		base = pager.NewHTTPClient(0, "")
	}
	return &Client{http: base, baseURL: cfg.BaseURL, appID: cfg.AppID, sessionID: cfg.SessionID}
}

func (c *Client) header() http.Header {
	h := http.Header{}
	h.Set("X-IG-App-ID", c.appID)
	if c.sessionID != "" {
		h.Set("Cookie", "sessionid="+c.sessionID)
	}
	return h
}

// flexID accepts ids encoded either as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// Profile is the subset of a user profile needed to page their feed.
type Profile struct {
	ID       string
	Username string
}

type profileResponse struct {
	Data struct {
		User *struct {
			ID       flexID `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	} `json:"data"`
}

// Profile resolves a username to its numeric user id.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var resp profileResponse
	u := c.baseURL + "/api/v1/users/web_profile_info/?username=" + url.QueryEscape(username)
	if err := pager.GetJSON(ctx, c.http, u, c.header(), &resp); err != nil {
		return nil, err
	}
	if resp.Data.User == nil || resp.Data.User.ID == "" {
		return nil, fmt.Errorf("profile %q does not exist", username)
	}
	return &Profile{ID: string(resp.Data.User.ID), Username: resp.Data.User.Username}, nil
}

// Post is one feed item.
type Post struct {
	PK      flexID `json:"pk"`
	Code    string `json:"code"`
	Caption *struct {
		Text string `json:"text"`
	} `json:"caption"`
	TakenAt int64 `json:"taken_at"`
}

// CaptionText returns the caption or "".
func (p Post) CaptionText() string {
	if p.Caption == nil {
		return ""
	}
	return p.Caption.Text
}

// FeedResponse is one page of a user's feed.
type FeedResponse struct {
	Items         []Post `json:"items"`
	NextMaxID     string `json:"next_max_id"`
	MoreAvailable bool   `json:"more_available"`
}

// Feed returns one page of a user's posts, newest first.
func (c *Client) Feed(ctx context.Context, userID, maxID string) (*FeedResponse, error) {
	q := url.Values{}
	q.Set("count", fmt.Sprint(feedPageSize))
	if maxID != "" {
		q.Set("max_id", maxID)
	}

	var resp FeedResponse
	u := fmt.Sprintf("%s/api/v1/feed/user/%s/?%s", c.baseURL, url.PathEscape(userID), q.Encode())
	if err := pager.GetJSON(ctx, c.http, u, c.header(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Comment is one comment on a post.
type Comment struct {
	PK   flexID `json:"pk"`
	Text string `json:"text"`
	User *struct {
		Username string `json:"username"`
	} `json:"user"`
	CreatedAt int64 `json:"created_at"`
}

// Username returns the commenter's handle or "".
func (c Comment) Username() string {
	if c.User == nil {
		return ""
	}
	return c.User.Username
}

// CommentsResponse is one page of a post's comments.
type CommentsResponse struct {
	Comments  []Comment `json:"comments"`
	NextMinID string    `json:"next_min_id"`
}

// Comments returns one page of comments on the media with the given pk.
func (c *Client) Comments(ctx context.Context, mediaPK, minID string) (*CommentsResponse, error) {
	q := url.Values{}
	q.Set("can_support_threading", "true")
	if minID != "" {
		q.Set("min_id", minID)
	}

	var resp CommentsResponse
	u := fmt.Sprintf("%s/api/v1/media/%s/comments/?%s", c.baseURL, url.PathEscape(mediaPK), q.Encode())
	if err := pager.GetJSON(ctx, c.http, u, c.header(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
