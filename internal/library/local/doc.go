// Package local implements library.Library over plain directories.
//
// movies_dir holds one entry per movie: a video file, or a folder containing
// one. A folder whose name ends in " Collection" is a collection of such
// entries. tv_dir follows the <Series>/<Season>/<episode files> layout. Item
// IDs are slash-separated paths relative to the library root, prefixed with
// "movies/" or "tv/". Tags are not written into media files; they persist in
// the state database.
package local
