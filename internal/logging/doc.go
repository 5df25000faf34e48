// Package logging assembles structured slog loggers and formatting helpers used
// across langtagger.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so scan code can tag log lines
// with scan run IDs, scopes, and item IDs. When a log directory is configured
// every record is also appended as JSON to a file. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
