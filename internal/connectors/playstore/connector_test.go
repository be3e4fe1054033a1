package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insight-scraper/internal/connectors/pager"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

const detailsPage = `<!doctype html><html><head>
<meta property="og:title" content="Numerology Daily - Apps on Google Play">
</head><body><h1 itemprop="name"><span>Numerology Daily</span></h1></body></html>`

// fakeStore serves one known app and pages of ten reviews, up to total.
type fakeStore struct {
	total   int
	failAt  int
	calls   int
	lastApp string
}

func (f *fakeStore) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/store/apps/details":
			if r.URL.Query().Get("id") != "com.numerology.daily" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, detailsPage)

		case "/_/PlayStoreUi/data/batchexecute":
			f.calls++
			assert.Equal(t, http.MethodPost, r.Method)
			if f.calls == f.failAt {
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}

			var outer [][][]any
			assert.NoError(t, json.Unmarshal([]byte(r.FormValue("f.req")), &outer))
			var payload []any
			assert.NoError(t, json.Unmarshal([]byte(outer[0][0][1].(string)), &payload))
			f.lastApp = payload[3].([]any)[0].(string)

			start := 0
			if tok, ok := payload[2].([]any)[2].([]any)[2].(string); ok {
				_, _ = fmt.Sscanf(tok, "page-%d", &start)
			}
			var reviews []any
			end := min(start+10, f.total)
			for i := start; i < end; i++ {
				reviews = append(reviews, review(fmt.Sprintf("gp:%d", i), "reviewer", fmt.Sprintf("review %d", i), 4, 1700000000))
			}
			var token any
			if end < f.total {
				token = fmt.Sprintf("page-%d", end)
			}
			_, _ = w.Write(envelope(t, reviews, token))

		default:
			http.NotFound(w, r)
		}
	}
}

func newTestConnector(t *testing.T, api *fakeStore) *Connector {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return New(NewClient(Config{BaseURL: srv.URL}, srv.Client()), pager.NewPacer(0))
}

func TestFetch_PagesUntilBound(t *testing.T) {
	api := &fakeStore{total: 100}
	c := newTestConnector(t, api)

	docs, err := c.Fetch(context.Background(), domain.Run{ID: "run_1"}, domain.ParseCriteria("com.numerology.daily"), domain.Bounds{MaxChildren: 25})
	require.NoError(t, err)

	assert.Len(t, docs, 25)
	assert.Equal(t, 3, api.calls)
	assert.Equal(t, "com.numerology.daily", api.lastApp)
}

func TestFetch_StopsWhenTokenRunsOut(t *testing.T) {
	api := &fakeStore{total: 15}
	c := newTestConnector(t, api)

	docs, err := c.Fetch(context.Background(), domain.Run{ID: "r"}, domain.ParseCriteria("com.numerology.daily"), domain.Bounds{})
	require.NoError(t, err)
	assert.Len(t, docs, 15)
}

func TestFetch_DocumentSchema(t *testing.T) {
	c := newTestConnector(t, &fakeStore{total: 1})

	docs, err := c.Fetch(context.Background(), domain.Run{ID: "run_5"}, domain.ParseCriteria("com.numerology.daily"), domain.Bounds{})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	d := docs[0]
	assert.Equal(t, "playstore_gp:0", d.ID)
	assert.Equal(t, "playstore_scraper", d.Scraper)
	assert.Equal(t, domain.PostReview, d.PostType)
	assert.Equal(t, "https://play.google.com/store/apps/details?id=com.numerology.daily&reviewId=gp%3A0", d.SourceURL)
	assert.Equal(t, domain.HashAuthor("reviewer"), d.AuthorHandleHash)
	assert.Equal(t, "review 0", d.Text)
	assert.Equal(t, "en", d.Language)
	assert.Equal(t, "gp:0", d.Metadata["id"])
	assert.Equal(t, "com.numerology.daily", d.Metadata["app_id"])
	assert.Equal(t, "Numerology Daily", d.Metadata["app_title"])
	assert.Equal(t, int64(4), d.Metadata["score"])
	assert.Equal(t, "2023-11-14T22:13:20Z", d.Metadata["at"])
	assert.NotContains(t, d.Metadata, "userName")
}

func TestFetch_ReviewFailureKeepsEarlierPages(t *testing.T) {
	c := newTestConnector(t, &fakeStore{total: 100, failAt: 2})

	docs, err := c.Fetch(context.Background(), domain.Run{ID: "r"}, domain.ParseCriteria("com.numerology.daily"), domain.Bounds{MaxChildren: 50})
	require.NoError(t, err)
	assert.Len(t, docs, 10)
}

func TestFetch_UnknownAppIsFatal(t *testing.T) {
	c := newTestConnector(t, &fakeStore{})

	docs, err := c.Fetch(context.Background(), domain.Run{ID: "r"}, domain.ParseCriteria("com.missing"), domain.Bounds{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceConnection)
	assert.ErrorIs(t, err, ErrAppNotFound)
	assert.Nil(t, docs)
}

func TestPageTitle_FallsBackToOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:title" content="Only OG"></head><body></body></html>`)
	}))
	defer srv.Close()

	app, err := NewClient(Config{BaseURL: srv.URL}, srv.Client()).LookupApp(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Only OG", app.Title)
}
