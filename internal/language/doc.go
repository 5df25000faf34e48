// Package language is the ISO 639 code registry.
//
// Every ISO 639-1 and ISO 639-2 code (terminology and bibliographic variants)
// maps to one Entry holding the canonical 3-letter code and the canonical
// language name. The table is built once at init and is read-only afterwards,
// so lookups are safe from any number of goroutines. All lookups are
// case-insensitive.
package language
