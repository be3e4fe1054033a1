// Package youtube implements a Source that harvests top-level comments from
// videos matching search queries, using the YouTube Data API v3.
//
// Each query is searched for up to MaxItems videos; every video then has up
// to MaxChildren comment threads fetched page by page. A video whose
// comments cannot be fetched (disabled, deleted, quota) is logged and skipped.
package youtube
