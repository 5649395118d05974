// Package dictionary is an in-memory phonetic dictionary: each word maps to
// one or more syllabified pronunciations, and a companion set records which
// words have trustworthy syllable boundaries.
//
// It satisfies the dictionary contract consumed by the search package. A
// Dictionary is not safe for concurrent mutation; once populated it may be
// read from any number of goroutines.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrWong99/rhymekit/pkg/syllable"
)

// Dictionary holds word-to-pronunciation mappings.
type Dictionary struct {
	entries     map[string][]syllable.Pronunciation
	syllabified map[string]struct{}
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		entries:     make(map[string][]syllable.Pronunciation),
		syllabified: make(map[string]struct{}),
	}
}

// Normalize returns the lookup key for word: trimmed and lowercased.
func Normalize(word string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(word))
}

// Add adds a syllabified pronunciation for word.
func (d *Dictionary) Add(word string, p syllable.Pronunciation) {
	key := Normalize(word)
	d.entries[key] = append(d.entries[key], p)
	d.syllabified[key] = struct{}{}
}

// AddUnsyllabified adds a pronunciation whose syllable boundaries are not
// known to be correct. Such words can be looked up but are skipped by
// corpus-wide searches.
func (d *Dictionary) AddUnsyllabified(word string, p syllable.Pronunciation) {
	key := Normalize(word)
	d.entries[key] = append(d.entries[key], p)
}

// Pronunciations returns all pronunciation variants for word.
func (d *Dictionary) Pronunciations(word string) []syllable.Pronunciation {
	return d.entries[Normalize(word)]
}

// Syllabified reports whether word is in the known-syllabified set.
func (d *Dictionary) Syllabified(word string) bool {
	_, ok := d.syllabified[Normalize(word)]
	return ok
}

// Words returns all words in the dictionary in sorted order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.entries) }

// Load reads a dictionary from a tab-separated stream.
//
// Format: word<TAB>pronunciation, where the pronunciation uses the syntax of
// [syllable.Parse] ("HH AH0 - L OW1"). Repeating a word adds an alternative
// pronunciation. Blank lines and lines starting with '#' are skipped. A
// leading '?' on the word marks the entry as unsyllabified.
func Load(r io.Reader) (*Dictionary, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, pron, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("dictionary: line %d: expected word<TAB>pronunciation", lineNum)
		}
		p, err := syllable.Parse(pron)
		if err != nil {
			return nil, fmt.Errorf("dictionary: line %d: %w", lineNum, err)
		}
		if len(p) == 0 {
			return nil, fmt.Errorf("dictionary: line %d: empty pronunciation for %q", lineNum, word)
		}

		if w, unsure := strings.CutPrefix(word, "?"); unsure {
			d.AddUnsyllabified(w, p)
		} else {
			d.Add(word, p)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	return d, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
