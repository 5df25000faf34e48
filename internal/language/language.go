package language

import (
	"sort"
	"strings"
)

// Entry describes one ISO 639 language.
type Entry struct {
	ISO2  string // ISO 639-1 (2-letter), empty when the language has none
	ISO3  string // ISO 639-2/T (3-letter)
	ISO3B string // ISO 639-2/B bibliographic variant, empty when identical to ISO3
	Name  string
}

// Special ISO 639-2 codes.
const (
	Undetermined = "und"
	Multiple     = "mul"
	NoContent    = "zxx"
	Uncoded      = "mis"
)

// Index maps built at init time.
var (
	byCode map[string]*Entry
	byWord map[string]*Entry
)

func init() {
	byCode = make(map[string]*Entry, len(languages)*2)
	byWord = make(map[string]*Entry, len(languages))
	for i := range languages {
		e := &languages[i]
		for _, code := range []string{e.ISO2, e.ISO3, e.ISO3B} {
			if code == "" {
				continue
			}
			if _, dup := byCode[code]; dup {
				panic("language: duplicate code " + code)
			}
			byCode[code] = e
		}
		word := strings.ToLower(e.Name)
		if _, dup := byWord[word]; !dup {
			byWord[word] = e
		}
	}
}

func lookup(code string) *Entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return byCode[code]
}

// Resolve returns the entry registered for a 2- or 3-letter code. Lookups are
// case-insensitive.
func Resolve(code string) (Entry, bool) {
	if e := lookup(code); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// IsValid reports whether code is a known ISO 639-1 or ISO 639-2 code.
func IsValid(code string) bool {
	return lookup(code) != nil
}

// Canonical3 returns the terminology 3-letter code for any recognized code,
// or "" when the code is unknown.
func Canonical3(code string) string {
	if e := lookup(code); e != nil {
		return e.ISO3
	}
	return ""
}

// Name returns the canonical language name for a recognized code.
func Name(code string) (string, bool) {
	if e := lookup(code); e != nil {
		return e.Name, true
	}
	return "", false
}

// All returns every registered entry ordered by ISO3 code.
func All() []Entry {
	out := make([]Entry, len(languages))
	copy(out, languages)
	sort.Slice(out, func(i, j int) bool { return out[i].ISO3 < out[j].ISO3 })
	return out
}

// Lookup resolves a 2- or 3-letter code or an English language name such as
// "German". Codes take precedence over names.
func Lookup(query string) (Entry, bool) {
	if e := lookup(query); e != nil {
		return *e, true
	}
	if e, ok := byWord[strings.ToLower(strings.TrimSpace(query))]; ok {
		return *e, true
	}
	return Entry{}, false
}
