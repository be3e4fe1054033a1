// Package surreal implements the document sink on SurrealDB.
//
// The connection is a WebSocket RPC session that reconnects with exponential
// backoff. Documents are inserted into the raw_comments table with their id as
// the record key; INSERT IGNORE leaves existing records untouched.
package surreal
