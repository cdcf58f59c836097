package lang

import (
	"slices"
	"testing"
)

func TestCatalog(t *testing.T) {
	if len(Catalog) != 29 {
		t.Errorf("len(Catalog) = %d, want 29", len(Catalog))
	}
	if Catalog[0].Code != "es" || Catalog[1].Code != "en" {
		t.Errorf("catalog order starts %q, %q; want es, en", Catalog[0].Code, Catalog[1].Code)
	}

	seen := map[string]bool{}
	for _, l := range Catalog {
		if len(l.Code) != 2 {
			t.Errorf("code %q is not two letters", l.Code)
		}
		if seen[l.Code] {
			t.Errorf("duplicate code %q", l.Code)
		}
		seen[l.Code] = true
		if l.Flag == "" || l.Name == "" {
			t.Errorf("entry %q is missing flag or name", l.Code)
		}
	}
}

func TestLookup(t *testing.T) {
	l, ok := Lookup("ja")
	if !ok || l.Name != "日本語" {
		t.Errorf("Lookup(ja) = %+v, %v", l, ok)
	}
	if _, ok := Lookup("xx"); ok {
		t.Error("Lookup(xx) should fail")
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"es", "xx", "ja", "es", ""})
	if want := []string{"es", "ja"}; !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"de", []string{"de", "nl"}},
		{"ESP", []string{"es"}},
		{"zz", []string{}},
	}

	for _, tt := range tests {
		var got []string
		for _, l := range Search(tt.query) {
			got = append(got, l.Code)
		}
		if tt.want == nil {
			if len(got) != len(Catalog) {
				t.Errorf("Search(%q) returned %d entries, want the whole catalog", tt.query, len(got))
			}
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
