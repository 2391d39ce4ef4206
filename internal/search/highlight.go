package search

import "strings"

// Highlight wraps every occurrence of term in s with <mark> tags. Matching
// ignores case and accents but the original text, including its casing, is
// preserved in the output. An empty term returns s unchanged.
func Highlight(s, term string) string {
	normTerm := []rune(Normalize(term))
	if len(normTerm) == 0 {
		return s
	}

	orig := []rune(s)

	// Fold rune by rune, recording which original rune each folded rune
	// came from. A folded rune can expand or collapse, so positions are
	// tracked explicitly rather than assumed 1:1.
	var folded []rune
	var at []int // original index per folded rune
	for i, r := range orig {
		for _, fr := range []rune(Normalize(string(r))) {
			folded = append(folded, fr)
			at = append(at, i)
		}
	}

	var b strings.Builder
	next := 0 // next original rune to copy
	for i := 0; i+len(normTerm) <= len(folded); {
		if !runesEqual(folded[i:i+len(normTerm)], normTerm) {
			i++
			continue
		}

		start := at[i]
		end := at[i+len(normTerm)-1] + 1
		if start < next {
			// overlaps a previous match
			i++
			continue
		}

		b.WriteString(string(orig[next:start]))
		b.WriteString("<mark>")
		b.WriteString(string(orig[start:end]))
		b.WriteString("</mark>")
		next = end
		i += len(normTerm)
	}

	if next == 0 {
		return s
	}
	b.WriteString(string(orig[next:]))
	return b.String()
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
