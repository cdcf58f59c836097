// Package lang holds the fixed catalog of dictation languages and the
// user's favorite / active language selection.
package lang

import "strings"

// Language is one catalog entry.
type Language struct {
	Code string // two-letter code passed to the transcriber
	Flag string
	Name string // native name
}

// Catalog lists the supported languages in menu order.
var Catalog = []Language{
	{"es", "🇪🇸", "Español"},
	{"en", "🇬🇧", "English"},
	{"ja", "🇯🇵", "日本語"},
	{"pt", "🇵🇹", "Português"},
	{"fr", "🇫🇷", "Français"},
	{"it", "🇮🇹", "Italiano"},
	{"de", "🇩🇪", "Deutsch"},
	{"ru", "🇷🇺", "Русский"},
	{"he", "🇮🇱", "עברית"},
	{"ar", "🇸🇦", "العربية"},
	{"zh", "🇨🇳", "中文"},
	{"ko", "🇰🇷", "한국어"},
	{"pl", "🇵🇱", "Polski"},
	{"uk", "🇺🇦", "Українська"},
	{"tr", "🇹🇷", "Türkçe"},
	{"vi", "🇻🇳", "Tiếng Việt"},
	{"id", "🇮🇩", "Bahasa Indonesia"},
	{"hi", "🇮🇳", "हिन्दी"},
	{"bn", "🇧🇩", "বাংলা"},
	{"ur", "🇵🇰", "اُردُو"},
	{"fa", "🇮🇷", "فارسی"},
	{"nl", "🇳🇱", "Nederlands"},
	{"sv", "🇸🇪", "Svenska"},
	{"no", "🇳🇴", "Norsk"},
	{"da", "🇩🇰", "Dansk"},
	{"cs", "🇨🇿", "Čeština"},
	{"el", "🇬🇷", "Ελληνικά"},
	{"ro", "🇷🇴", "Română"},
	{"hu", "🇭🇺", "Magyar"},
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (Language, bool) {
	for _, l := range Catalog {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Valid reports whether code is in the catalog.
func Valid(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Filter returns the codes that are in the catalog, in order, without
// duplicates.
func Filter(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if Valid(c) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Search returns the catalog entries whose code or name contains query,
// ignoring case. An empty query returns the whole catalog.
func Search(query string) []Language {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Catalog
	}
	var out []Language
	for _, l := range Catalog {
		if strings.Contains(l.Code, q) || strings.Contains(strings.ToLower(l.Name), q) {
			out = append(out, l)
		}
	}
	return out
}
