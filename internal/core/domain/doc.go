// Package domain defines the core business entities for the insight scraper.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: the canonical record every source maps into
//   - Record: the uniform intermediate shape produced by each connector
//   - Criteria / Bounds: what to fetch and how much of it
//   - Run: one orchestrator invocation
//
// It also holds the identity and privacy helpers (DeriveID, HashAuthor).
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
