package aggregate

import "langtagger/internal/tags"

// Contribution is the set of language names an item passes to its parent,
// per kind. The undetermined sentinel never appears in a Contribution.
type Contribution struct {
	Audio    []string
	Subtitle []string
}

// For returns the names of kind.
func (c Contribution) For(kind tags.Kind) []string {
	if kind == tags.Subtitle {
		return c.Subtitle
	}
	return c.Audio
}

func (c *Contribution) set(kind tags.Kind, names []string) {
	if kind == tags.Subtitle {
		c.Subtitle = names
		return
	}
	c.Audio = names
}

// union merges name lists in order, dropping case-insensitive duplicates and
// the undetermined sentinel.
func union(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, name := range list {
			if name == "" || isUndetermined(name) {
				continue
			}
			key := tags.Fold(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
