package library

import "testing"

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"Movie":    TypeMovie,
		"episode":  TypeEpisode,
		" BoxSet ": TypeBoxSet,
		"Playlist": TypeOther,
		"":         TypeOther,
	}
	for input, want := range cases {
		if got := ParseType(input); got != want {
			t.Errorf("ParseType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	item := Item{ID: "1", Tags: []string{"language_English"}, ProviderIDs: map[string]string{"Tmdb": "949"}}
	clone := item.Clone()
	clone.Tags[0] = "changed"
	clone.ProviderIDs["Tmdb"] = "0"
	if item.Tags[0] != "language_English" || item.ProviderIDs["Tmdb"] != "949" {
		t.Fatalf("clone aliased original: %+v", item)
	}
}

func TestLabelFallsBackToID(t *testing.T) {
	item := &Item{ID: "tv/Dark"}
	if item.Label() != "tv/Dark" {
		t.Fatalf("unexpected label %q", item.Label())
	}
	item.Name = "Dark"
	if item.Label() != "Dark" {
		t.Fatalf("unexpected label %q", item.Label())
	}
}
