// Package config loads, normalizes, and validates langtagger configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JELLYFIN_API_KEY, either from the process environment or from a .env file
// next to the config file. The Config type centralizes every knob the CLI and
// the serve loop need.
//
// Tagging values are carried verbatim; the scan policy owns their parsing and
// fallback rules so that a snapshot can be taken once per pass.
package config
