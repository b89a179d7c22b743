package types

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSearchTerm(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Boubacar", "Boubacar"},
		{"strips_structural", "Bouba,car (SARL)", "Boubacar SARL"},
		{"escapes_pattern_chars", "50%_rabais", `50\%\_rabais`},
		{"escapes_backslash", `a\b`, `a\\b`},
		{"trims", "  Niamey  ", "Niamey"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeSearchTerm(tc.input))
		})
	}
}

func TestSanitizeSearchTermTruncatesOnRunes(t *testing.T) {
	// Multi-byte input must never be cut mid-rune
	long := strings.Repeat("é", 150)
	got := SanitizeSearchTerm(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, MaxSearchTermLength, utf8.RuneCountInString(got))
}

func TestSanitizeSearchTermTruncationKeepsEscapesPaired(t *testing.T) {
	// A backslash landing on the cut point has to stay escaped so it
	// cannot swallow the wildcard appended by the pattern builder
	input := strings.Repeat("a", MaxSearchTermLength-1) + `\%`
	got := SanitizeSearchTerm(input)
	assert.True(t, strings.HasSuffix(got, `\\`))
	assert.False(t, strings.HasSuffix(got, `\`) && !strings.HasSuffix(got, `\\`))
}
