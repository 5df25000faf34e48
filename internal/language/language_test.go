package language

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		query string
		iso3  string
		ok    bool
	}{
		{"de", "deu", true},
		{"GER", "deu", true},
		{"German", "deu", true},
		{"  french ", "fra", true},
		{"undetermined", "und", true},
		{"Elvish", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			entry, ok := Lookup(tt.query)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.query, ok, tt.ok)
			}
			if entry.ISO3 != tt.iso3 {
				t.Fatalf("Lookup(%q) = %+v, want ISO3 %q", tt.query, entry, tt.iso3)
			}
		})
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	upper, ok := Resolve("ENG")
	if !ok {
		t.Fatal("expected ENG to resolve")
	}
	lower, ok := Resolve("eng")
	if !ok {
		t.Fatal("expected eng to resolve")
	}
	if upper != lower {
		t.Fatalf("ENG resolved to %+v, eng to %+v", upper, lower)
	}
	if upper.Name != "English" || upper.ISO2 != "en" {
		t.Fatalf("unexpected entry %+v", upper)
	}
}

func TestResolveBibliographicPairs(t *testing.T) {
	pairs := [][2]string{
		{"ger", "deu"}, {"fre", "fra"}, {"chi", "zho"}, {"dut", "nld"},
		{"cze", "ces"}, {"gre", "ell"}, {"per", "fas"}, {"rum", "ron"},
		{"tib", "bod"}, {"wel", "cym"},
	}
	for _, pair := range pairs {
		b, ok := Resolve(pair[0])
		if !ok {
			t.Fatalf("%s did not resolve", pair[0])
		}
		term, ok := Resolve(pair[1])
		if !ok {
			t.Fatalf("%s did not resolve", pair[1])
		}
		if b != term {
			t.Errorf("%s and %s resolved to different entries", pair[0], pair[1])
		}
		if b.ISO3 != pair[1] || b.ISO3B != pair[0] {
			t.Errorf("entry for %s = %+v", pair[0], b)
		}
	}
}

func TestEveryCodeResolvesToItsOwnEntry(t *testing.T) {
	for _, entry := range All() {
		for _, code := range []string{entry.ISO2, entry.ISO3, entry.ISO3B} {
			if code == "" {
				continue
			}
			got, ok := Resolve(code)
			if !ok {
				t.Fatalf("code %q not registered", code)
			}
			if got.ISO3 != entry.ISO3 {
				t.Fatalf("code %q resolved to %s, want %s", code, got.ISO3, entry.ISO3)
			}
			if len(got.ISO3) != 3 {
				t.Fatalf("entry %+v has malformed ISO3", got)
			}
		}
	}
}

func TestSpecialCodes(t *testing.T) {
	for _, code := range []string{Undetermined, Multiple, NoContent, Uncoded} {
		if !IsValid(code) {
			t.Errorf("special code %q not registered", code)
		}
		if Canonical3(code) != code {
			t.Errorf("Canonical3(%q) = %q", code, Canonical3(code))
		}
	}
	if name, _ := Name("und"); name != "Undetermined" {
		t.Errorf("Name(und) = %q", name)
	}
}

func TestIsValidRejectsUnknown(t *testing.T) {
	for _, code := range []string{"", "e", "xx", "qqq", "engl", "a1b"} {
		if IsValid(code) {
			t.Errorf("IsValid(%q) = true", code)
		}
	}
}

func TestAllSortedAndComplete(t *testing.T) {
	all := All()
	if len(all) < 480 {
		t.Fatalf("registry has %d entries", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ISO3 >= all[i].ISO3 {
			t.Fatalf("All() not sorted at %d: %s >= %s", i, all[i-1].ISO3, all[i].ISO3)
		}
	}
}
