package playstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
)

const (
	// DefaultBaseURL is the store host.
	DefaultBaseURL = "https://play.google.com"

	// DefaultLanguage and DefaultCountry select the review locale.
	DefaultLanguage = "en"
	DefaultCountry  = "us"

	reviewsRPC = "UsvDTd"

	// sortNewest orders reviews by date, newest first.
	sortNewest = 2

	// maxPageSize is the largest review page the RPC serves.
	maxPageSize = 199
)

// xssiPrefix guards batchexecute responses against JSON hijacking.
var xssiPrefix = []byte(")]}'")

// ErrAppNotFound is returned when the details page does not exist.
var ErrAppNotFound = errors.New("playstore: app not found")

// Config holds store settings.
type Config struct {
	BaseURL  string
	Language string
	Country  string
}

// Client talks to the Play Store web endpoints.
type Client struct {
	http    *http.Client
	baseURL string
	lang    string
	country string
}

// NewClient creates a client. Empty settings use the store defaults.
func NewClient(cfg Config, base *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if base == nil {
		base = pager.NewHTTPClient(0, "")
	}
	return &Client{http: base, baseURL: cfg.BaseURL, lang: cfg.Language, country: cfg.Country}
}

// App is the resolved store listing.
type App struct {
	ID    string
	Title string
}

// LookupApp loads the details page to confirm the app exists and read its title.
func (c *Client) LookupApp(ctx context.Context, appID string) (*App, error) {
	q := url.Values{}
	q.Set("id", appID)
	q.Set("hl", c.lang)
	q.Set("gl", c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/store/apps/details?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := pager.Do(c.http, req)
	if err != nil {
		if pager.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrAppNotFound, appID)
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse details page: %w", err)
	}
	return &App{ID: appID, Title: pageTitle(doc)}, nil
}

// pageTitle prefers the listing heading and falls back to og:title.
func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
}

// Reviews fetches one page of newest reviews. token is "" for the first page.
func (c *Client) Reviews(ctx context.Context, appID string, count int, token string) (*ReviewPage, error) {
	count = max(1, min(count, maxPageSize))

	form := url.Values{}
	form.Set("f.req", reviewsRequest(appID, count, token))

	q := url.Values{}
	q.Set("hl", c.lang)
	q.Set("gl", c.country)

	u := c.baseURL + "/_/PlayStoreUi/data/batchexecute?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	body, err := pager.Do(c.http, req)
	if err != nil {
		return nil, err
	}
	return parseReviews(trimXSSI(body))
}

func trimXSSI(body []byte) []byte {
	return bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), xssiPrefix))
}

// reviewsRequest builds the f.req envelope. The RPC payload is itself a
// JSON document embedded as a string.
func reviewsRequest(appID string, count int, token string) string {
	tok := "null"
	if token != "" {
		tok = strconv.Quote(token)
	}
	payload := fmt.Sprintf(`[null,null,[2,%d,[%d,null,%s],null,[]],[%s,7]]`,
		sortNewest, count, tok, strconv.Quote(appID))
	return fmt.Sprintf(`[[[%q,%s,null,"generic"]]]`, reviewsRPC, strconv.Quote(payload))
}
