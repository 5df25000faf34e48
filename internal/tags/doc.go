// Package tags reads and writes language tags on library items.
//
// A tag is serialized as <prefix><value>; the prefix decides its Kind. When
// one configured prefix is itself a prefix of the other, the longest match
// wins. Prefix and value comparisons are case-insensitive using Unicode case
// folding. Mutations persist through the library before the call returns.
package tags
