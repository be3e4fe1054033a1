package reddit

import (
	"bytes"
	"encoding/json"
)

// Thing kinds used by the listing endpoints.
const (
	kindComment = "t1"
	kindLink    = "t3"
	kindMore    = "more"
)

// deletedAuthor is what Reddit reports for removed accounts.
const deletedAuthor = "[deleted]"

// Listing is Reddit's paginated container.
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []Thing `json:"children"`
	} `json:"data"`
}

// Thing wraps a post, comment or "more" stub. Data is decoded lazily since
// its shape depends on Kind.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Post is the subset of a link (t3) the harvest uses.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
}

// Comment is the subset of a comment (t1) that is mapped.
type Comment struct {
	ID         string          `json:"id"`
	Body       string          `json:"body"`
	Author     string          `json:"author"`
	Score      *int            `json:"score"`
	CreatedUTC *float64        `json:"created_utc"`
	Permalink  string          `json:"permalink"`
	Replies    json.RawMessage `json:"replies"`
}

// Posts decodes the link children of a listing.
func (l *Listing) Posts() []Post {
	posts := make([]Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != kindLink {
			continue
		}
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil || p.ID == "" {
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

// Flatten walks a comment tree breadth first and returns at most limit
// comments. "more" stubs and undecodable children are skipped.
func (l *Listing) Flatten(limit int) []Comment {
	var out []Comment
	queue := append([]Thing(nil), l.Data.Children...)

	for len(queue) > 0 && len(out) < limit {
		thing := queue[0]
		queue = queue[1:]

		if thing.Kind != kindComment {
			continue
		}
		var c Comment
		if err := json.Unmarshal(thing.Data, &c); err != nil {
			continue
		}
		out = append(out, c)

		if replies := c.replyListing(); replies != nil {
			queue = append(queue, replies.Data.Children...)
		}
	}
	return out
}

// replyListing decodes the replies field, which is "" when a comment has
// no replies and a Listing otherwise.
func (c *Comment) replyListing() *Listing {
	raw := bytes.TrimSpace(c.Replies)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var l Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return &l
}
