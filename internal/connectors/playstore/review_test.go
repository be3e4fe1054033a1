package playstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(id, user, text string, score int, at int64) []any {
	return []any{id, []any{user, []any{nil, 2, nil, []any{"", "", "https://img"}}}, score, nil, text, []any{at, 0}, 7, nil, nil, nil, "1.2.3"}
}

// envelope wraps reviews the way batchexecute does: an XSSI prefix, then an
// outer array whose [0][2] is the payload serialised as a string.
func envelope(t *testing.T, reviews []any, token any) []byte {
	t.Helper()
	payload, err := json.Marshal([]any{reviews, []any{nil, token}, nil})
	require.NoError(t, err)
	outer, err := json.Marshal([]any{
		[]any{"wrb.fr", reviewsRPC, string(payload), nil, nil, nil, "generic"},
		[]any{"di", 42},
	})
	require.NoError(t, err)
	return append([]byte(")]}'\n\n"), outer...)
}

func TestParseReviews(t *testing.T) {
	body := envelope(t, []any{
		review("gp:1", "Alice", "Great <app> & more", 5, 1700000000),
		review("gp:2", "Bob", "meh", 2, 1700000100),
	}, "next-token")

	page, err := parseReviews(trimXSSI(body))
	require.NoError(t, err)

	require.Len(t, page.Reviews, 2)
	r := page.Reviews[0]
	assert.Equal(t, "gp:1", r.ID)
	assert.Equal(t, "Alice", r.UserName)
	assert.Equal(t, "Great <app> & more", r.Content)
	assert.Equal(t, int64(5), r.Score)
	assert.Equal(t, int64(1700000000), r.At)
	assert.Equal(t, int64(7), r.ThumbsUp)
	assert.Equal(t, "1.2.3", r.AppVersion)
	assert.Equal(t, "next-token", page.Token)
}

func TestParseReviews_LastPage(t *testing.T) {
	page, err := parseReviews(trimXSSI(envelope(t, []any{review("gp:1", "A", "x", 1, 1)}, nil)))
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 1)
	assert.Empty(t, page.Token)
}

func TestParseReviews_NullPayload(t *testing.T) {
	page, err := parseReviews([]byte(`[["wrb.fr","UsvDTd",null,null,null,[5],"generic"]]`))
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
}

func TestParseReviews_Malformed(t *testing.T) {
	_, err := parseReviews([]byte(`<html>`))
	assert.Error(t, err)
}

func TestReviewsRequest(t *testing.T) {
	var outer [][][]any
	require.NoError(t, json.Unmarshal([]byte(reviewsRequest("com.example", 50, "tok")), &outer))

	call := outer[0][0]
	assert.Equal(t, reviewsRPC, call[0])

	var payload []any
	require.NoError(t, json.Unmarshal([]byte(call[1].(string)), &payload))
	paging := payload[2].([]any)[2].([]any)
	assert.Equal(t, float64(50), paging[0])
	assert.Equal(t, "tok", paging[2])
	assert.Equal(t, "com.example", payload[3].([]any)[0])

	require.NoError(t, json.Unmarshal([]byte(reviewsRequest("com.example", 50, "")), &outer))
	require.NoError(t, json.Unmarshal([]byte(outer[0][0][1].(string)), &payload))
	assert.Nil(t, payload[2].([]any)[2].([]any)[2])
}
