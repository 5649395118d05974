package search

import (
	"cmp"
	"slices"
)

// Result groups matching words by their exact score.
type Result map[float64]map[string]struct{}

// Match is one word with its score.
type Match struct {
	Word  string
	Score float64
}

func (r Result) add(score float64, word string) {
	bucket, ok := r[score]
	if !ok {
		bucket = make(map[string]struct{})
		r[score] = bucket
	}
	bucket[word] = struct{}{}
}

func (r Result) merge(other Result) {
	for score, words := range other {
		for w := range words {
			r.add(score, w)
		}
	}
}

// Len returns the number of (score, word) pairs.
func (r Result) Len() int {
	n := 0
	for _, words := range r {
		n += len(words)
	}
	return n
}

// Words returns the sorted words stored under score.
func (r Result) Words(score float64) []string {
	bucket := r[score]
	out := make([]string, 0, len(bucket))
	for w := range bucket {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Ranked returns every match ordered by descending score, then word.
func (r Result) Ranked() []Match {
	out := make([]Match, 0, r.Len())
	for score, words := range r {
		for w := range words {
			out = append(out, Match{Word: w, Score: score})
		}
	}
	slices.SortFunc(out, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}
