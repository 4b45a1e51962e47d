// Package naming derives identifiers for generated artifacts: casing
// transforms, naive table pluralization, and the mapping from DSL type tags
// to schema storage types. Every generator recomputes names through this
// package so that entity files, aggregators and migrations stay consistent.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into lowercase words on separators (space, '_', '-', '.')
// and on case boundaries ("blogPost", "HTTPServer").
func Words(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

// Snake returns the snake_case form used for module, file and table names.
func Snake(s string) string {
	return strings.Join(Words(s), "_")
}

// Pascal returns the PascalCase form used for struct and type identifiers.
// Words are joined without separators except where the join would be read
// back as a different split: before a word starting with a digit, and after
// a single-letter word that is not followed by a capitalized word
// ("pos_x_y" -> "PosX_Y"). Snake(Pascal(s)) == Snake(s) and Pascal is
// idempotent.
func Pascal(s string) string {
	// A Caser keeps state between calls and must not be shared.
	title := cases.Title(language.Und)

	var b strings.Builder
	var prev string
	for _, w := range Words(s) {
		if prev != "" && needsSeparator(prev, w) {
			b.WriteByte('_')
		}
		first, size := utf8.DecodeRuneInString(w)
		if unicode.IsDigit(first) {
			b.WriteString(w)
		} else {
			b.WriteString(title.String(w[:size]))
			b.WriteString(w[size:])
		}
		prev = w
	}
	return b.String()
}

// needsSeparator reports whether next must be set off from prev for Words
// to split the Pascal form the same way.
func needsSeparator(prev, next string) bool {
	first, size := utf8.DecodeRuneInString(next)
	if unicode.IsDigit(first) {
		return true
	}
	if utf8.RuneCountInString(prev) != 1 {
		return false
	}
	second, _ := utf8.DecodeRuneInString(next[size:])
	return len(next) == size || !unicode.IsLetter(second)
}
