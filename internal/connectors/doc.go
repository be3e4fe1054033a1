// Package connectors provides implementations of the Source interface for
// the supported content platforms. Each connector knows how to page one
// platform's API and map its records into canonical documents.
//
// Connectors are registered with the SourceFactory at startup.
package connectors
