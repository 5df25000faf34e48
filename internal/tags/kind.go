package tags

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind distinguishes audio language tags from subtitle language tags.
type Kind int

const (
	Audio Kind = iota
	Subtitle
)

// Kinds lists every tag kind in processing order.
var Kinds = []Kind{Audio, Subtitle}

func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// Prefixes holds the serialized prefix of each kind.
type Prefixes struct {
	Audio    string
	Subtitle string
}

// For returns the prefix of kind.
func (p Prefixes) For(kind Kind) string {
	if kind == Subtitle {
		return p.Subtitle
	}
	return p.Audio
}

// Format serializes a value of kind.
func (p Prefixes) Format(kind Kind, value string) string {
	return p.For(kind) + value
}

// Parse resolves the kind of tag by its longest matching prefix and returns
// the prefix-stripped value. Prefixes match under the same folding as
// EqualFold.
func (p Prefixes) Parse(tag string) (Kind, string, bool) {
	best, cut := -1, 0
	var kind Kind
	for _, k := range Kinds {
		folded := Fold(p.For(k))
		if folded == "" || len(folded) <= best {
			continue
		}
		if n, ok := cutPrefixFold(tag, folded); ok {
			best, cut = len(folded), n
			kind = k
		}
	}
	if best < 0 {
		return 0, "", false
	}
	return kind, tag[cut:], true
}

// cutPrefixFold returns the byte length of the leading part of s whose folded
// form equals folded.
func cutPrefixFold(s, folded string) (int, bool) {
	for i := range s {
		if i == 0 {
			continue
		}
		head := Fold(s[:i])
		if head == folded {
			return i, true
		}
		if !strings.HasPrefix(folded, head) {
			return 0, false
		}
	}
	if s != "" && Fold(s) == folded {
		return len(s), true
	}
	return 0, false
}

// Fold returns the case-folded form of s used for comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
