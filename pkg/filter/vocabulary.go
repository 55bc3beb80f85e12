package filter

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arnavshah/campfinder-api/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Vocabulary merges the tag and interest_name columns into one list of
// distinct interests. Entries are deduplicated case-insensitively and a
// capitalized spelling wins over a lowercase one.
func Vocabulary(tags []models.InterestTag) []string {
	byKey := make(map[string]string)
	for _, t := range tags {
		for _, raw := range []*string{t.Tag, t.InterestName} {
			if raw == nil {
				continue
			}
			addInterest(byKey, *raw)
		}
	}

	out := make([]string, 0, len(byKey))
	for _, v := range byKey {
		out = append(out, v)
	}
	SortInterests(out)
	return out
}

func addInterest(byKey map[string]string, raw string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	existing, ok := byKey[key]
	if !ok || (startsUpper(name) && !startsUpper(existing)) {
		byKey[key] = name
	}
}

// startsUpper is true when the first rune is unchanged by upper-casing
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == unicode.ToUpper(r)
}

// SortInterests orders names alphabetically ignoring case and accents
func SortInterests(names []string) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(names, func(i, j int) bool {
		if cmp := c.CompareString(names[i], names[j]); cmp != 0 {
			return cmp < 0
		}
		return names[i] < names[j]
	})
}
