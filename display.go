package formgraph

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// deriveDisplayName turns a Go field name into a human-readable display
// name: CamelCase is split into words and title-cased for the given
// language, so "FirstName" becomes "First Name".
func deriveDisplayName(field, lang string) string {
	words := splitCamel(field)
	if len(words) == 0 {
		return field
	}
	caser := cases.Title(language.Make(lang))
	return caser.String(strings.ToLower(strings.Join(words, " ")))
}

// splitCamel splits on lower-to-upper transitions, keeping acronym runs
// such as "ID" together.
func splitCamel(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}
