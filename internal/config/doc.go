// Package config centralizes pipeline configuration and file-path
// resolution. Configuration is loaded from SALESPIPE_* environment
// variables, optionally merged with a config.yaml next to the executable,
// and validated before use. Paths is the single source of truth for every
// artifact location; no other package hardcodes a file path.
package config
