// Package policy snapshots the tagging configuration for one scan.
//
// FromConfig validates the configured prefixes and normalizes the whitelist
// to canonical ISO 639-2/T codes. Filter applies that whitelist to the codes
// extracted from a media file.
package policy
