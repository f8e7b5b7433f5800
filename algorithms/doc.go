// Package algorithms provides the raw string similarity algorithms used by
// fuzzymatch. These can be called directly when a raw weight between two
// strings is needed; most callers should prefer the ranking functions in the
// package root.
//
// All algorithms operate on Unicode scalar values (runes) and compare them
// case-insensitively. Every similarity lies in [0, 1], where 1 means the two
// strings are identical after case folding. The functions are pure and safe
// for concurrent use.
//
// Invalid UTF-8 is never rejected. A pair containing invalid UTF-8 scores 1 if
// the two inputs are byte-identical and 0 otherwise.
package algorithms

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fold lower-cases every rune of s.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// invalidPair reports whether either input is not valid UTF-8 and, if so,
// the similarity to use for the pair.
func invalidPair(a, b string) (float64, bool) {
	if utf8.ValidString(a) && utf8.ValidString(b) {
		return 0, false
	}
	if a == b {
		return 1, true
	}
	return 0, true
}
