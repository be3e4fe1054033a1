// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Source: fetches and normalises one platform's content
//   - SourceFactory: builds a Source for a platform
//   - DocumentSink: the shared append-only datastore
//   - SnapshotWriter: the durable local batch file
//   - RunIDGenerator: collision-free run identifiers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
