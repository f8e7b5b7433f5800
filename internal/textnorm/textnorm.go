// Package textnorm normalizes text before it is scored.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFKC normalization, turns whitespace into plain
// spaces, drops the remaining control characters and trims surrounding
// whitespace, so that visually identical strings such as "ｒｕｓｔ" and "rust"
// compare equal.
//
// Invalid UTF-8 is returned unchanged; the scorers compare it byte for byte.
func Normalize(text string) string {
	if !utf8.ValidString(text) {
		return text
	}

	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}
