// Package storage selects the document sink from the datastore URI.
//
// Supported schemes:
//
//   - sqlite://path, file:path: local SQLite file
//   - ws, wss, http, https: SurrealDB
//   - mongodb, mongodb+srv: MongoDB
//   - memory://: in-process sink, discarded at exit
package storage
