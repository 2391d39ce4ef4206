// Package search implements fuzzy, accent-insensitive filtering over jobs
// and workers, with result caching, highlighting, and input debouncing.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks: decompose, drop marks, recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a string and removes diacritics, so "Peluquería"
// and "peluqueria" compare equal.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Fold failures leave the input usable, just unfolded.
		folded = s
	}
	return strings.ToLower(folded)
}

// Match reports whether term occurs in s, ignoring case and accents. An
// empty term matches everything.
func Match(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(Normalize(s), Normalize(term))
}
