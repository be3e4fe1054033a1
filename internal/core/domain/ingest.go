package domain

import (
	"strings"
	"time"
)

// Criteria selects what a source fetches: profiles, app ids, subreddits or
// search queries depending on the platform.
type Criteria struct {
	Targets []string
}

// ParseCriteria splits a comma separated selector, dropping blanks.
func ParseCriteria(s string) Criteria {
	var targets []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			targets = append(targets, t)
		}
	}
	return Criteria{Targets: targets}
}

// IsEmpty reports whether no target was supplied.
func (c Criteria) IsEmpty() bool {
	return len(c.Targets) == 0
}

// String joins the targets back with commas.
func (c Criteria) String() string {
	return strings.Join(c.Targets, ",")
}

// Bounds caps a fetch. MaxItems limits top-level items (posts, videos, apps,
// tweets) per target; MaxChildren limits comments or reviews per item.
type Bounds struct {
	MaxItems    int
	MaxChildren int
}

// WithDefaults fills non-positive limits from def.
func (b Bounds) WithDefaults(def Bounds) Bounds {
	if b.MaxItems <= 0 {
		b.MaxItems = def.MaxItems
	}
	if b.MaxChildren <= 0 {
		b.MaxChildren = def.MaxChildren
	}
	return b
}

// Run identifies one orchestrator invocation. Every document it produces
// carries the same ID.
type Run struct {
	ID        string
	StartedAt time.Time
}
