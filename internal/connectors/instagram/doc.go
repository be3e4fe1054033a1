// Package instagram implements a Source that reads comments on the most
// recent posts of public profiles through Instagram's web API.
//
// Requests are anonymous unless a session id is configured; a session
// widens which profiles and comments are visible. Only public data is read.
package instagram
