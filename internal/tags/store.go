package tags

import (
	"context"
	"fmt"
	"strings"

	"langtagger/internal/library"
)

// Store applies kind-aware tag mutations to items and persists them.
type Store struct {
	updater  library.TagUpdater
	prefixes Prefixes
}

// NewStore builds a Store writing through updater.
func NewStore(updater library.TagUpdater, prefixes Prefixes) *Store {
	return &Store{updater: updater, prefixes: prefixes}
}

// Prefixes returns the prefixes this store serializes with.
func (s *Store) Prefixes() Prefixes { return s.prefixes }

// Has reports whether item carries at least one tag of kind.
func (s *Store) Has(item *library.Item, kind Kind) bool {
	for _, tag := range item.Tags {
		if k, _, ok := s.prefixes.Parse(tag); ok && k == kind {
			return true
		}
	}
	return false
}

// Get returns the prefix-stripped values of kind in tag order, without
// case-insensitive duplicates.
func (s *Store) Get(item *library.Item, kind Kind) []string {
	values := make([]string, 0, len(item.Tags))
	seen := make(map[string]struct{}, len(item.Tags))
	for _, tag := range item.Tags {
		k, value, ok := s.prefixes.Parse(tag)
		if !ok || k != kind {
			continue
		}
		key := Fold(value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, value)
	}
	return values
}

// Remove drops every tag of kind from item and persists the change. Nothing
// is persisted when the item has no such tags.
func (s *Store) Remove(ctx context.Context, item *library.Item, kind Kind) error {
	next := s.without(item.Tags, kind)
	if len(next) == len(item.Tags) {
		return nil
	}
	return s.commit(ctx, item, next)
}

// Add appends values of kind that item does not already carry and persists
// the change. It returns the values actually added.
func (s *Store) Add(ctx context.Context, item *library.Item, kind Kind, values []string) ([]string, error) {
	next, added := s.merge(item.Tags, kind, values)
	if len(added) == 0 {
		return nil, nil
	}
	if err := s.commit(ctx, item, next); err != nil {
		return nil, err
	}
	return added, nil
}

// Replace swaps every tag of kind for values with a single persistence call.
// It returns the values written. When the resulting tag list equals the
// current one nothing is persisted.
func (s *Store) Replace(ctx context.Context, item *library.Item, kind Kind, values []string) ([]string, error) {
	next, written := s.merge(s.without(item.Tags, kind), kind, values)
	if sameTags(next, item.Tags) {
		return written, nil
	}
	if err := s.commit(ctx, item, next); err != nil {
		return nil, err
	}
	return written, nil
}

// RemoveTag drops one literal tag (case-insensitive) and persists the change.
func (s *Store) RemoveTag(ctx context.Context, item *library.Item, tag string) (bool, error) {
	next := make([]string, 0, len(item.Tags))
	for _, existing := range item.Tags {
		if !EqualFold(existing, tag) {
			next = append(next, existing)
		}
	}
	if len(next) == len(item.Tags) {
		return false, nil
	}
	return true, s.commit(ctx, item, next)
}

// AddTag appends one literal tag unless present (case-insensitive) and
// persists the change.
func (s *Store) AddTag(ctx context.Context, item *library.Item, tag string) (bool, error) {
	for _, existing := range item.Tags {
		if EqualFold(existing, tag) {
			return false, nil
		}
	}
	next := append(append([]string(nil), item.Tags...), tag)
	return true, s.commit(ctx, item, next)
}

func (s *Store) without(current []string, kind Kind) []string {
	out := make([]string, 0, len(current))
	for _, tag := range current {
		if k, _, ok := s.prefixes.Parse(tag); ok && k == kind {
			continue
		}
		out = append(out, tag)
	}
	return out
}

func (s *Store) merge(current []string, kind Kind, values []string) ([]string, []string) {
	seen := make(map[string]struct{}, len(current)+len(values))
	for _, tag := range current {
		if k, value, ok := s.prefixes.Parse(tag); ok && k == kind {
			seen[Fold(value)] = struct{}{}
		}
	}
	next := append([]string(nil), current...)
	var added []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		key := Fold(value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		next = append(next, s.prefixes.Format(kind, value))
		added = append(added, value)
	}
	return next, added
}

// commit persists next and only then updates item, so a failed write leaves
// the in-memory tags matching the library.
func (s *Store) commit(ctx context.Context, item *library.Item, next []string) error {
	previous := item.Tags
	item.Tags = next
	if err := s.updater.UpdateTags(ctx, item); err != nil {
		item.Tags = previous
		return fmt.Errorf("persist tags for %s: %w", item.Label(), err)
	}
	return nil
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
