// Package jellyfin implements library.Library against a Jellyfin server.
//
// Requests authenticate with the X-Emby-Token header. Tag updates fetch the
// full item DTO, replace its Tags field, and post the document back so no
// other metadata is lost. External subtitle streams that carry a path are
// reported as sidecars.
package jellyfin
