package tags_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"langtagger/internal/library"
	"langtagger/internal/tags"
)

type recordingUpdater struct {
	calls int
	err   error
}

func (r *recordingUpdater) UpdateTags(_ context.Context, _ *library.Item) error {
	r.calls++
	return r.err
}

var defaultPrefixes = tags.Prefixes{Audio: "language_", Subtitle: "subtitle_language_"}

func TestParseUsesLongestPrefix(t *testing.T) {
	nested := tags.Prefixes{Audio: "language_", Subtitle: "language_x_"}
	tests := []struct {
		tag   string
		kind  tags.Kind
		value string
		ok    bool
	}{
		{"language_English", tags.Audio, "English", true},
		{"language_x_English", tags.Subtitle, "English", true},
		{"LANGUAGE_X_French", tags.Subtitle, "French", true},
		{"Language_German", tags.Audio, "German", true},
		{"favorite", 0, "", false},
	}
	for _, tt := range tests {
		kind, value, ok := nested.Parse(tt.tag)
		if ok != tt.ok || (ok && (kind != tt.kind || value != tt.value)) {
			t.Fatalf("Parse(%q) = (%v, %q, %v), want (%v, %q, %v)", tt.tag, kind, value, ok, tt.kind, tt.value, tt.ok)
		}
	}
}

func TestParsePrefixMatchesLikeEqualFold(t *testing.T) {
	prefixes := tags.Prefixes{Audio: "straße_", Subtitle: "untertitel_"}
	tag := "STRASSE_English"
	if !tags.EqualFold(tag, "straße_English") {
		t.Fatalf("EqualFold should treat ß and SS alike")
	}
	kind, value, ok := prefixes.Parse(tag)
	if !ok || kind != tags.Audio || value != "English" {
		t.Fatalf("Parse(%q) = (%v, %q, %v), want audio English", tag, kind, value, ok)
	}
	if _, _, ok := prefixes.Parse("strasse"); ok {
		t.Fatalf("partial prefix must not match")
	}
}

func TestParseDefaultPrefixesDoNotCollide(t *testing.T) {
	kind, value, ok := defaultPrefixes.Parse("subtitle_language_English")
	if !ok || kind != tags.Subtitle || value != "English" {
		t.Fatalf("unexpected parse: %v %q %v", kind, value, ok)
	}
}

func TestGetAndHas(t *testing.T) {
	store := tags.NewStore(&recordingUpdater{}, defaultPrefixes)
	item := &library.Item{ID: "1", Tags: []string{"language_English", "favorite", "language_english", "subtitle_language_French"}}

	if !store.Has(item, tags.Audio) || !store.Has(item, tags.Subtitle) {
		t.Fatalf("expected both kinds present")
	}
	if got := store.Get(item, tags.Audio); !reflect.DeepEqual(got, []string{"English"}) {
		t.Fatalf("unexpected audio values: %v", got)
	}
	if got := store.Get(item, tags.Subtitle); !reflect.DeepEqual(got, []string{"French"}) {
		t.Fatalf("unexpected subtitle values: %v", got)
	}
	empty := &library.Item{ID: "2", Tags: []string{"favorite"}}
	if store.Has(empty, tags.Audio) {
		t.Fatalf("expected no audio tags")
	}
}

func TestAddIsIdempotentAndCaseInsensitive(t *testing.T) {
	updater := &recordingUpdater{}
	store := tags.NewStore(updater, defaultPrefixes)
	item := &library.Item{ID: "1", Tags: []string{"language_English"}}

	added, err := store.Add(context.Background(), item, tags.Audio, []string{"ENGLISH", "German", "german", " "})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !reflect.DeepEqual(added, []string{"German"}) {
		t.Fatalf("unexpected added values: %v", added)
	}
	if updater.calls != 1 {
		t.Fatalf("expected one persistence call, got %d", updater.calls)
	}

	added, err = store.Add(context.Background(), item, tags.Audio, []string{"German"})
	if err != nil || len(added) != 0 {
		t.Fatalf("expected no-op add, got %v %v", added, err)
	}
	if updater.calls != 1 {
		t.Fatalf("no-op add must not persist, calls=%d", updater.calls)
	}
}

func TestRemoveOnlyTouchesKind(t *testing.T) {
	updater := &recordingUpdater{}
	store := tags.NewStore(updater, defaultPrefixes)
	item := &library.Item{ID: "1", Tags: []string{"language_English", "subtitle_language_French", "favorite"}}

	if err := store.Remove(context.Background(), item, tags.Audio); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	want := []string{"subtitle_language_French", "favorite"}
	if !reflect.DeepEqual(item.Tags, want) {
		t.Fatalf("tags = %v, want %v", item.Tags, want)
	}
	if err := store.Remove(context.Background(), item, tags.Audio); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if updater.calls != 1 {
		t.Fatalf("expected one persistence call, got %d", updater.calls)
	}
}

func TestReplaceUsesSinglePersistenceCall(t *testing.T) {
	updater := &recordingUpdater{}
	store := tags.NewStore(updater, defaultPrefixes)
	item := &library.Item{ID: "1", Tags: []string{"language_und", "favorite"}}

	written, err := store.Replace(context.Background(), item, tags.Audio, []string{"English", "German"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !reflect.DeepEqual(written, []string{"English", "German"}) {
		t.Fatalf("unexpected written values: %v", written)
	}
	want := []string{"favorite", "language_English", "language_German"}
	if !reflect.DeepEqual(item.Tags, want) {
		t.Fatalf("tags = %v, want %v", item.Tags, want)
	}
	if updater.calls != 1 {
		t.Fatalf("expected one persistence call, got %d", updater.calls)
	}

	if _, err := store.Replace(context.Background(), item, tags.Audio, []string{"English", "German"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if updater.calls != 1 {
		t.Fatalf("unchanged replace must not persist, calls=%d", updater.calls)
	}
}

func TestFailedPersistenceRestoresTags(t *testing.T) {
	updater := &recordingUpdater{err: errors.New("boom")}
	store := tags.NewStore(updater, defaultPrefixes)
	item := &library.Item{ID: "1", Name: "Heat", Tags: []string{"language_English"}}

	if _, err := store.Replace(context.Background(), item, tags.Audio, []string{"German"}); err == nil {
		t.Fatalf("expected persistence error")
	}
	if !reflect.DeepEqual(item.Tags, []string{"language_English"}) {
		t.Fatalf("tags should be restored, got %v", item.Tags)
	}
}

func TestLiteralTagHelpers(t *testing.T) {
	updater := &recordingUpdater{}
	store := tags.NewStore(updater, defaultPrefixes)
	item := &library.Item{ID: "p1", Tags: []string{"favorite"}}

	added, err := store.AddTag(context.Background(), item, "language_Non-Media")
	if err != nil || !added {
		t.Fatalf("AddTag = %v, %v", added, err)
	}
	added, err = store.AddTag(context.Background(), item, "LANGUAGE_non-media")
	if err != nil || added {
		t.Fatalf("duplicate AddTag = %v, %v", added, err)
	}
	removed, err := store.RemoveTag(context.Background(), item, "language_non-media")
	if err != nil || !removed {
		t.Fatalf("RemoveTag = %v, %v", removed, err)
	}
	if !reflect.DeepEqual(item.Tags, []string{"favorite"}) {
		t.Fatalf("unexpected tags: %v", item.Tags)
	}
	if updater.calls != 2 {
		t.Fatalf("expected two persistence calls, got %d", updater.calls)
	}
}

func TestFoldHandlesUnicode(t *testing.T) {
	if !tags.EqualFold("Straße", "STRASSE") {
		t.Fatalf("expected full case folding to match")
	}
	if tags.Kind(7).String() != "unknown" || tags.Subtitle.String() != "subtitle" {
		t.Fatalf("unexpected kind strings")
	}
}
