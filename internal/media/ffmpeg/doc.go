// Package ffmpeg runs the inspection binary against a media file and returns
// its diagnostic output.
//
// Only `ffmpeg -i <path> -hide_banner` is used. Without an output file ffmpeg
// exits non-zero after printing the input description to stderr, so a
// non-zero exit with diagnostic text is treated as success. A process-wide
// semaphore caps how many inspections run at once.
package ffmpeg
