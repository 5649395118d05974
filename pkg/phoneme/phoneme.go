// Package phoneme defines the ARPAbet phoneme inventory used by rhymekit.
//
// Every phoneme has a stable integer [ID] that indexes the similarity table,
// a [Kind] (vowel or consonant) and articulatory attributes: vowels carry a
// position on a two-dimensional vowel chart, consonants carry place of
// articulation, manner of articulation and voicing.
//
// The inventory is fixed and read-only; all exported functions are safe for
// concurrent use.
package phoneme

import (
	"fmt"
	"strings"
)

// ID is the stable identity of a phoneme. IDs are dense, starting at 0, and
// follow the CMU dictionary symbol order.
type ID int

// Kind distinguishes vowels from consonants.
type Kind uint8

const (
	Vowel Kind = iota + 1
	Consonant
)

// String returns "vowel" or "consonant".
func (k Kind) String() string {
	switch k {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Place is the place of articulation of a consonant.
type Place uint8

const (
	PlaceNone Place = iota
	Bilabial
	Labiodental
	Dental
	Alveolar
	Postalveolar
	Palatal
	Velar
	LabialVelar
	Glottal
)

// Manner is the manner of articulation of a consonant.
type Manner uint8

const (
	MannerNone Manner = iota
	Plosive
	Affricate
	Fricative
	Nasal
	Lateral
	Approximant
)

// Position is a point on the vowel chart. Front grows towards the front of
// the mouth and Height towards a closed jaw.
type Position struct {
	Front  float64
	Height float64
}

// Phoneme is a single entry of the inventory.
type Phoneme struct {
	ID     ID
	Symbol string
	Kind   Kind

	// Position is only meaningful when HasPosition is true (vowels).
	Position    Position
	HasPosition bool

	// Consonant attributes; zero for vowels.
	Place  Place
	Manner Manner
	Voiced bool
}

// IsVowel reports whether p is a vowel.
func (p Phoneme) IsVowel() bool { return p.Kind == Vowel }

// String returns the ARPAbet symbol.
func (p Phoneme) String() string { return p.Symbol }

func vowel(symbol string, front, height float64) Phoneme {
	return Phoneme{
		Symbol:      symbol,
		Kind:        Vowel,
		Position:    Position{Front: front, Height: height},
		HasPosition: true,
	}
}

func consonant(symbol string, place Place, manner Manner, voiced bool) Phoneme {
	return Phoneme{
		Symbol: symbol,
		Kind:   Consonant,
		Place:  place,
		Manner: manner,
		Voiced: voiced,
	}
}

// inventory is indexed by ID. Diphthongs are placed at their onset vowel.
var inventory = []Phoneme{
	vowel("AA", 0, 0),
	vowel("AE", 10, 2),
	vowel("AH", 3, 5),
	vowel("AO", 0, 5),
	vowel("AW", 8, 0),
	vowel("AY", 8, 0),
	consonant("B", Bilabial, Plosive, true),
	consonant("CH", Postalveolar, Affricate, false),
	consonant("D", Alveolar, Plosive, true),
	consonant("DH", Dental, Fricative, true),
	vowel("EH", 10, 5),
	vowel("ER", 5, 6),
	vowel("EY", 11, 8),
	consonant("F", Labiodental, Fricative, false),
	consonant("G", Velar, Plosive, true),
	consonant("HH", Glottal, Fricative, false),
	vowel("IH", 10, 10),
	vowel("IY", 12, 12),
	consonant("JH", Postalveolar, Affricate, true),
	consonant("K", Velar, Plosive, false),
	consonant("L", Alveolar, Lateral, true),
	consonant("M", Bilabial, Nasal, true),
	consonant("N", Alveolar, Nasal, true),
	consonant("NG", Velar, Nasal, true),
	vowel("OW", 0, 8),
	vowel("OY", 0, 5),
	consonant("P", Bilabial, Plosive, false),
	consonant("R", Alveolar, Approximant, true),
	consonant("S", Alveolar, Fricative, false),
	consonant("SH", Postalveolar, Fricative, false),
	consonant("T", Alveolar, Plosive, false),
	consonant("TH", Dental, Fricative, false),
	vowel("UH", 2, 10),
	vowel("UW", 0, 12),
	consonant("V", Labiodental, Fricative, true),
	consonant("W", LabialVelar, Approximant, true),
	consonant("Y", Palatal, Approximant, true),
	consonant("Z", Alveolar, Fricative, true),
	consonant("ZH", Postalveolar, Fricative, true),
}

var bySymbol map[string]ID

func init() {
	bySymbol = make(map[string]ID, len(inventory))
	for i := range inventory {
		inventory[i].ID = ID(i)
		bySymbol[inventory[i].Symbol] = ID(i)
	}
}

// Count returns the number of phonemes in the inventory.
func Count() int { return len(inventory) }

// ByID returns the phoneme with the given identity.
func ByID(id ID) (Phoneme, bool) {
	if id < 0 || int(id) >= len(inventory) {
		return Phoneme{}, false
	}
	return inventory[id], true
}

// Lookup returns the phoneme for an ARPAbet symbol. The lookup is
// case-insensitive and ignores a trailing stress digit, so "ay1" resolves to AY.
func Lookup(symbol string) (Phoneme, bool) {
	sym, _ := splitStress(strings.ToUpper(strings.TrimSpace(symbol)))
	id, ok := bySymbol[sym]
	if !ok {
		return Phoneme{}, false
	}
	return inventory[id], true
}

// MustLookup is like [Lookup] but panics on unknown symbols. Intended for
// tests and package-level fixtures.
func MustLookup(symbol string) Phoneme {
	p, ok := Lookup(symbol)
	if !ok {
		panic(fmt.Sprintf("phoneme: unknown symbol %q", symbol))
	}
	return p
}

// All returns a copy of the full inventory in ID order.
func All() []Phoneme {
	out := make([]Phoneme, len(inventory))
	copy(out, inventory)
	return out
}
