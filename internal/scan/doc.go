// Package scan runs tagging passes over a library.
//
// A pass takes the cross-process scan lock, snapshots the tagging policy,
// checks that ffmpeg is available, and then walks the requested scopes
// (movies, series, collections) building one tree per root. Roots run on a
// bounded worker pool, or one at a time in synchronous mode. Each pass is
// recorded as a run in the state store.
//
// Only configuration errors, lock contention, and cancellation end a pass
// early. Everything else is logged against the item or branch involved and
// the pass moves on.
package scan
