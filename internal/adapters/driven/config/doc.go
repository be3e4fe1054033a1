// Package config loads process settings from defaults, an optional TOML or
// YAML file, and environment variables, in that order of precedence.
//
// Settings are validated per platform before any network call, so a missing
// credential fails fast with the name of the environment variable to set.
package config
