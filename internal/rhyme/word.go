package rhyme

import "github.com/MrWong99/rhymekit/pkg/syllable"

// WordScorer scores two pronunciations syllable by syllable.
type WordScorer struct {
	syllables SyllableScoring
}

// NewWordScorer returns a [WordScorer] using s for per-syllable scores.
func NewWordScorer(s SyllableScoring) *WordScorer {
	return &WordScorer{syllables: s}
}

// Score compares the last k syllables of both pronunciations, where k is the
// length of the shorter one, and averages the syllable scores. When the
// lengths differ the average is multiplied by
//
//	(|len1-len2|/2 + k) / max(len1, len2)
//
// which never exceeds 1. Empty input scores 0.
func (w *WordScorer) Score(p1, p2 syllable.Pronunciation) float64 {
	l1, l2 := len(p1), len(p2)
	if l1 == 0 || l2 == 0 {
		return 0
	}
	shorter, longer := min(l1, l2), max(l1, l2)

	var sum float64
	for k := 1; k <= shorter; k++ {
		sum += w.syllables.ScoreSyllables(p1[l1-k], p2[l2-k])
	}
	avg := sum / float64(shorter)
	if l1 == l2 {
		return avg
	}
	diff := float64(longer - shorter)
	return avg * (diff/2 + float64(shorter)) / float64(longer)
}
