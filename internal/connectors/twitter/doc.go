// Package twitter implements a Source over the X/Twitter API v2 recent
// search endpoint. Results are consumed as a lazy stream and cut off by
// count; the endpoint itself has no notion of a total limit.
package twitter
