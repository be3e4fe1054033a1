// Package snapshot writes each run's documents as one JSON file under the
// data directory, grouped by platform. Files are written to a temporary name
// and renamed into place, so a reader never sees a partial snapshot.
package snapshot
