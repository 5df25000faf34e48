// Package services defines shared utilities consumed by the scan pipeline and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp scan run IDs, library item IDs, scopes, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     pass-aborting failures (configuration, lock contention, cancellation)
//     from failures contained to one item or branch.
package services
