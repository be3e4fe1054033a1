// Package driving defines the interfaces that drive the core from outside.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and MCP adapters call these; core services implement them.
package driving
