// Package api defines wire-format types, converters, and the HTTP client for
// the daemon control surface. It translates scan reports and stored run
// history into transport-friendly DTOs that the CLI and other consumers can
// render without coupling to internal types.
//
// # Key Types
//
// DaemonStatus: running state, current pass, schedule, last run, and
// dependency availability.
//
// Run/ScopeCounts: one tagging pass with per-section outcome counts.
//
// # Converters
//
// FromRunRecord: state.RunRecord -> Run.
//
// FromReport: scan.Report -> Run, used when a pass finishes synchronously.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
// Durations are reported in whole milliseconds.
package api
