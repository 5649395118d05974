// Package syllable models syllabified pronunciations.
//
// A [Syllable] is split into an onset (consonants before the vowel), an
// optional nucleus vowel and a coda (consonants after the vowel). A
// [Pronunciation] is an ordered sequence of syllables. Values are produced by a
// phonetic dictionary and treated as read-only by the scoring code.
package syllable

import (
	"fmt"
	"strings"

	"github.com/MrWong99/rhymekit/pkg/phoneme"
)

// Separator delimits syllables in the textual form accepted by [Parse].
const Separator = "-"

// Syllable is one onset/nucleus/coda unit.
type Syllable struct {
	Onset   []phoneme.Phoneme
	Nucleus *phoneme.Stressed
	Coda    []phoneme.Phoneme
}

// HasNucleus reports whether the syllable has a vowel.
func (s Syllable) HasNucleus() bool { return s.Nucleus != nil }

// String renders the syllable as space separated CMU symbols.
func (s Syllable) String() string {
	parts := make([]string, 0, len(s.Onset)+1+len(s.Coda))
	for _, p := range s.Onset {
		parts = append(parts, p.Symbol)
	}
	if s.Nucleus != nil {
		parts = append(parts, s.Nucleus.String())
	}
	for _, p := range s.Coda {
		parts = append(parts, p.Symbol)
	}
	return strings.Join(parts, " ")
}

// Pronunciation is an ordered sequence of syllables.
type Pronunciation []Syllable

// Tail returns the last n syllables (the rhyme tail). When n exceeds the
// length the whole pronunciation is returned. The result shares storage with p.
func (p Pronunciation) Tail(n int) Pronunciation {
	if n <= 0 {
		return nil
	}
	if n >= len(p) {
		return p
	}
	return p[len(p)-n:]
}

// String renders the pronunciation in the form accepted by [Parse].
func (p Pronunciation) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " "+Separator+" ")
}

// Parse builds a pronunciation from CMU symbols with syllables separated by
// "-", e.g. "HH AH0 - L OW1". Consonants before the vowel form the onset,
// consonants after it form the coda. A syllable may have at most one vowel.
func Parse(text string) (Pronunciation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	chunks := strings.Split(text, Separator)
	out := make(Pronunciation, 0, len(chunks))
	for i, chunk := range chunks {
		syl, err := parseSyllable(strings.Fields(chunk))
		if err != nil {
			return nil, fmt.Errorf("syllable %d: %w", i+1, err)
		}
		out = append(out, syl)
	}
	return out, nil
}

// MustParse is like [Parse] but panics on error. Intended for tests.
func MustParse(text string) Pronunciation {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSyllable(tokens []string) (Syllable, error) {
	if len(tokens) == 0 {
		return Syllable{}, fmt.Errorf("syllable: empty syllable")
	}
	var s Syllable
	for _, tok := range tokens {
		p, ok := phoneme.Lookup(tok)
		if !ok {
			return Syllable{}, fmt.Errorf("syllable: unknown phoneme %q", tok)
		}
		if p.IsVowel() {
			if s.Nucleus != nil {
				return Syllable{}, fmt.Errorf("syllable: second vowel %q after %q", tok, s.Nucleus.String())
			}
			v, err := phoneme.ParseVowel(tok)
			if err != nil {
				return Syllable{}, err
			}
			s.Nucleus = &v
			continue
		}
		if s.Nucleus == nil {
			s.Onset = append(s.Onset, p)
		} else {
			s.Coda = append(s.Coda, p)
		}
	}
	return s, nil
}
