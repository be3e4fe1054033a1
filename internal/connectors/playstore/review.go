package playstore

import (
	"fmt"

	"github.com/buger/jsonparser"
)

// Review is one decoded store review.
type Review struct {
	ID         string
	UserName   string
	Content    string
	Score      int64
	At         int64
	ThumbsUp   int64
	AppVersion string
}

// ReviewPage is one page of reviews and the continuation token.
type ReviewPage struct {
	Reviews []Review
	Token   string
}

// parseReviews decodes a batchexecute envelope. The payload lives as a JSON
// string at [0][2]; inside it reviews are at [0] and the continuation token
// is the last element of the second to last entry.
func parseReviews(envelope []byte) (*ReviewPage, error) {
	raw, kind, _, err := jsonparser.Get(envelope, "[0]", "[2]")
	if err != nil {
		return nil, fmt.Errorf("decode review envelope: %w", err)
	}
	// A null payload means the app has no (more) reviews.
	if kind == jsonparser.Null {
		return &ReviewPage{}, nil
	}
	if kind != jsonparser.String {
		return nil, fmt.Errorf("decode review envelope: unexpected payload %s", kind)
	}
	inner, err := jsonparser.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode review payload: %w", err)
	}
	payload := []byte(inner)

	page := &ReviewPage{}
	for _, e := range elementsAt(payload, "[0]") {
		if e.kind != jsonparser.Array {
			continue
		}
		if r, ok := decodeReview(e.value); ok {
			page.Reviews = append(page.Reviews, r)
		}
	}
	page.Token = continuationToken(payload)
	return page, nil
}

func decodeReview(value []byte) (Review, bool) {
	id, err := jsonparser.GetString(value, "[0]")
	if err != nil || id == "" {
		return Review{}, false
	}

	r := Review{ID: id}
	r.UserName, _ = jsonparser.GetString(value, "[1]", "[0]")
	r.Content, _ = jsonparser.GetString(value, "[4]")
	r.Score, _ = jsonparser.GetInt(value, "[2]")
	r.At, _ = jsonparser.GetInt(value, "[5]", "[0]")
	r.ThumbsUp, _ = jsonparser.GetInt(value, "[6]")
	r.AppVersion, _ = jsonparser.GetString(value, "[10]")
	return r, true
}

// continuationToken returns payload[-2][-1] when it is a string.
func continuationToken(payload []byte) string {
	entries := elements(payload)
	if len(entries) < 2 {
		return ""
	}
	last := elements(entries[len(entries)-2].value)
	if len(last) == 0 {
		return ""
	}
	tail := last[len(last)-1]
	if tail.kind != jsonparser.String {
		return ""
	}
	tok, err := jsonparser.ParseString(tail.value)
	if err != nil {
		return ""
	}
	return tok
}

type element struct {
	value []byte
	kind  jsonparser.ValueType
}

// elements lists the direct children of a JSON array. Non-arrays yield nil.
func elements(data []byte) []element {
	return elementsAt(data)
}

// elementsAt lists the children of the array found at keys.
func elementsAt(data []byte, keys ...string) []element {
	var out []element
	_, _ = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		out = append(out, element{value: value, kind: dataType})
	}, keys...)
	return out
}
