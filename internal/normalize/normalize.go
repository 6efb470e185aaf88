// Package normalize turns raw habit names into clean token sequences for
// matching. Normalization is total: it never fails, and pathological input
// degrades to an empty token slice.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxInputRunes bounds work on pathological input. Habit names are short;
// anything past this is truncated before tokenization.
const maxInputRunes = 200

// stopWords are dropped from the token stream. They carry no category signal
// and would otherwise pollute the fuzzy matcher.
var stopWords = map[string]bool{
	"a":   true,
	"to":  true,
	"the": true,
	"my":  true,
}

// stripMarks removes combining marks after NFD decomposition, then
// recomposes. "café" and "cafe" tokenize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokens normalizes text into an ordered sequence of lowercase,
// diacritic-stripped, punctuation-free tokens with stop words removed.
// Idempotent: feeding the joined output back in yields the same tokens.
func Tokens(text string) []string {
	text = clamp(text, maxInputRunes)
	text = strings.ToLower(text)

	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}

	// Everything that is not a letter or digit becomes a token boundary.
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Join renders a token sequence back into the single normalized string the
// pattern matcher evaluates rules against.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Token normalizes a string expected to produce exactly one token, such as a
// registry keyword. Returns "" when the input normalizes away entirely or
// splits into multiple tokens.
func Token(text string) string {
	tokens := Tokens(text)
	if len(tokens) != 1 {
		return ""
	}
	return tokens[0]
}

func clamp(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
