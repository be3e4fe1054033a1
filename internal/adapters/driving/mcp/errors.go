// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants trigger ingestion runs and discover the supported
// platforms.
package mcp

import "errors"

// ErrMissingIngestor is returned when the ingestion service is not provided.
var ErrMissingIngestor = errors.New("mcp: ingestion service is required")
