package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typographicReplacer maps curly quotes and long dashes to their ASCII
// equivalents before any other normalization step.
var typographicReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"–", "-",
	"—", "-",
)

// diacriticStripper decomposes to compatibility form and drops combining
// marks so that "Café" and "cafe" normalize identically.
var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Slugify normalizes a piece or track title into its comparable slug form:
// parenthesized substrings are removed, diacritics and case are folded, and
// maximal alphanumeric runs are joined with "-". Empty or punctuation-only
// input yields an empty slug. Slugify is idempotent.
func Slugify(value string) string {
	return slugify(value, true)
}

// SlugifyKeepParens is Slugify without parenthetical removal, used to build
// the secondary slug variant for track titles like "Elegy (Live)".
func SlugifyKeepParens(value string) string {
	return slugify(value, false)
}

func slugify(value string, stripParens bool) string {
	if value == "" {
		return ""
	}
	cleaned := typographicReplacer.Replace(value)
	if stripParens {
		cleaned = stripParenthetical(cleaned)
	}
	cleaned, _, _ = transform.String(diacriticStripper, cleaned)
	cleaned = strings.ToLower(cleaned)

	var tokens []string
	var current strings.Builder
	for _, ch := range cleaned {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			current.WriteRune(ch)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return strings.Join(tokens, "-")
}

// stripParenthetical removes parenthesized substrings, tracking nesting with
// a depth counter so unbalanced parens degrade gracefully instead of
// erroring.
func stripParenthetical(value string) string {
	var result strings.Builder
	depth := 0
	for _, ch := range value {
		switch {
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			result.WriteRune(ch)
		}
	}
	return result.String()
}
