package types

import "strings"

// MaxSearchTermLength caps sanitized search input, counted in runes
const MaxSearchTermLength = 100

// SanitizeSearchTerm prepares raw user input for use inside an ILIKE
// pattern. Structural characters are stripped, the term is trimmed and
// capped to 100 runes, then pattern metacharacters are escaped. The cap
// runs on runes before escaping so truncation can neither split a
// multi-byte character nor separate a backslash from what it escapes.
func SanitizeSearchTerm(raw string) string {
	term := strings.NewReplacer(",", "", "(", "", ")", "").Replace(raw)
	term = strings.TrimSpace(term)
	if runes := []rune(term); len(runes) > MaxSearchTermLength {
		term = string(runes[:MaxSearchTermLength])
	}
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}
