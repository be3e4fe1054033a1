// Package reddit implements a Source that collects comments from the hot
// posts of one or more subreddits through Reddit's OAuth API.
//
// Authentication is app-only (client credentials). Comment trees are
// flattened breadth first; "load more" stubs are dropped rather than expanded.
package reddit
