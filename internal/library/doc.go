// Package library defines the media library contract the scan pipeline
// consumes: enumerating movies, series, seasons, episodes, and collections,
// and persisting an item's tag list.
//
// Two implementations live in subpackages: jellyfin talks to a Jellyfin
// server over HTTP, local walks movie and TV directories and keeps tags in
// the SQLite state store.
package library
