// Package state persists langtagger's local bookkeeping in SQLite.
//
// Two tables live here: item_tags holds tag lists for the local library
// backend (Jellyfin keeps its own tags) and scan_runs records the history of
// tagging passes. The schema is versioned; a database created by a different
// version is rejected with ErrSchemaMismatch rather than migrated.
package state
