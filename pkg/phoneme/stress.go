package phoneme

import (
	"fmt"
	"strings"
)

// Stress is the lexical stress level of a vowel.
type Stress int8

const (
	// StressNone marks phonemes that carry no stress (consonants).
	StressNone Stress = -1
	Unstressed Stress = 0
	Primary    Stress = 1
	Secondary  Stress = 2
)

// String returns the CMU digit for the stress level, or "" for StressNone.
func (s Stress) String() string {
	if s == StressNone {
		return ""
	}
	return fmt.Sprintf("%d", int8(s))
}

// Stressed is a vowel occurrence together with its stress level.
type Stressed struct {
	Phoneme
	Stress Stress
}

// String renders the CMU form, e.g. "AY1".
func (s Stressed) String() string {
	return s.Symbol + s.Stress.String()
}

// ParseVowel parses a CMU vowel token such as "AY1". A missing digit yields
// [StressNone]. It fails when the token is not a known vowel.
func ParseVowel(token string) (Stressed, error) {
	p, ok := Lookup(token)
	if !ok {
		return Stressed{}, fmt.Errorf("phoneme: unknown symbol %q", token)
	}
	if !p.IsVowel() {
		return Stressed{}, fmt.Errorf("phoneme: %q is not a vowel", token)
	}
	_, stress := splitStress(strings.TrimSpace(token))
	return Stressed{Phoneme: p, Stress: stress}, nil
}

// splitStress separates a trailing 0/1/2 digit from symbol.
func splitStress(symbol string) (string, Stress) {
	if n := len(symbol); n > 1 {
		switch symbol[n-1] {
		case '0':
			return symbol[:n-1], Unstressed
		case '1':
			return symbol[:n-1], Primary
		case '2':
			return symbol[:n-1], Secondary
		}
	}
	return symbol, StressNone
}
