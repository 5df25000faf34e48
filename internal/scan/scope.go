package scan

import (
	"fmt"
	"strings"

	"langtagger/internal/services"
)

// Scope selects which parts of the library a pass visits.
type Scope string

const (
	ScopeMovies            Scope = "movies"
	ScopeSeries            Scope = "series"
	ScopeCollections       Scope = "collections"
	ScopeExternalSubtitles Scope = "externalsubtitles"
	ScopeEverything        Scope = "everything"
)

// Scopes lists every accepted scope name.
func Scopes() []Scope {
	return []Scope{ScopeMovies, ScopeSeries, ScopeCollections, ScopeExternalSubtitles, ScopeEverything}
}

// ParseScope maps a case-insensitive scope name. An empty name selects
// everything.
func ParseScope(raw string) (Scope, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ScopeEverything, nil
	}
	for _, scope := range Scopes() {
		if string(scope) == name {
			return scope, nil
		}
	}
	return "", services.Wrap(services.ErrConfiguration, "scan", "parse scope",
		fmt.Sprintf("unknown scope %q (want one of %s)", raw, scopeList()), nil)
}

// parts returns the library sections visited for scope, in order.
func (s Scope) parts() []Scope {
	switch s {
	case ScopeEverything, ScopeExternalSubtitles:
		return []Scope{ScopeMovies, ScopeSeries, ScopeCollections}
	default:
		return []Scope{s}
	}
}

func scopeList() string {
	names := make([]string, 0, len(Scopes()))
	for _, scope := range Scopes() {
		names = append(names, string(scope))
	}
	return strings.Join(names, ", ")
}
