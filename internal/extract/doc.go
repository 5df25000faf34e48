// Package extract pulls language codes out of ffmpeg diagnostic text and
// subtitle sidecar filenames.
//
// Embedded audio and subtitle codes come from the stream descriptors ffmpeg
// prints ("Stream #0:1(eng): Audio: ..."). Sidecar codes come from the first
// dot-delimited 2 or 3 letter token of the file name that the language
// registry recognizes ("Movie.de.forced.srt"). Optionally, a sidecar whose
// name carries no code is parsed and its text language detected.
//
// Every list returned is lower-case, restricted to 3-letter tokens, and free
// of duplicates. Registry canonicalization (bibliographic to terminology
// codes) is left to the caller except for sidecar codes, which are resolved
// here because 2-letter tokens are only meaningful after lookup.
package extract
