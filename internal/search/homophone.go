package search

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// codesFor returns the union of the Double Metaphone codes of every token in
// word. Empty codes (words without consonants) are excluded.
func codesFor(word string) map[string]struct{} {
	tokens := strings.FieldsFunc(word, func(r rune) bool { return r == ' ' || r == '-' })
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

// codesOverlap reports whether the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
