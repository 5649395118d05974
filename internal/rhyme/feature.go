package rhyme

import (
	"math"

	"github.com/MrWong99/rhymekit/pkg/phoneme"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

// Default weights and vowel normalisation for [FeatureScorer].
const (
	DefaultOnsetWeight   = 1.0
	DefaultNucleusWeight = 6.0
	DefaultCodaWeight    = 1.0
	DefaultVowelNorm     = 20.0
)

// Partial consonant scores; a perfect match sums to 1.
const (
	voicingScore = 0.05
	mannerScore  = 0.625
	placeScore   = 0.325
)

// Weights are the relative importance of the three syllable components.
type Weights struct {
	Onset   float64
	Nucleus float64
	Coda    float64
}

// DefaultWeights returns onset=1, nucleus=6, coda=1.
func DefaultWeights() Weights {
	return Weights{Onset: DefaultOnsetWeight, Nucleus: DefaultNucleusWeight, Coda: DefaultCodaWeight}
}

// FeatureOption configures a [FeatureScorer].
type FeatureOption func(*FeatureScorer)

// WithWeights overrides the component weights.
func WithWeights(w Weights) FeatureOption {
	return func(f *FeatureScorer) {
		f.weights = w
	}
}

// WithVowelNorm sets the distance that maps to zero vowel similarity.
// Non-positive values are ignored. Default: 20.
func WithVowelNorm(v float64) FeatureOption {
	return func(f *FeatureScorer) {
		if v > 0 {
			f.vowelNorm = v
		}
	}
}

// FeatureScorer scores syllables from articulatory features without a
// similarity table.
type FeatureScorer struct {
	weights   Weights
	vowelNorm float64
}

var _ SyllableScoring = (*FeatureScorer)(nil)

// NewFeatureScorer returns a [FeatureScorer] with default weights.
func NewFeatureScorer(opts ...FeatureOption) *FeatureScorer {
	f := &FeatureScorer{
		weights:   DefaultWeights(),
		vowelNorm: DefaultVowelNorm,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// ScoreSyllables implements [SyllableScoring].
//
// A component absent on both sides is dropped: its weight becomes zero and
// the component count n shrinks by one. The weighted average is then divided
// by n once more.
func (f *FeatureScorer) ScoreSyllables(a, b syllable.Syllable) float64 {
	w := f.weights
	n := 3.0

	if len(a.Onset) == 0 && len(b.Onset) == 0 {
		w.Onset = 0
		n--
	}
	if a.Nucleus == nil && b.Nucleus == nil {
		w.Nucleus = 0
		n--
	}
	if len(a.Coda) == 0 && len(b.Coda) == 0 {
		w.Coda = 0
		n--
	}

	total := w.Onset + w.Nucleus + w.Coda
	if total == 0 || n == 0 {
		return 0
	}

	sum := w.Onset*ScoreClusters(a.Onset, b.Onset) +
		w.Nucleus*f.ScoreVowels(a.Nucleus, b.Nucleus) +
		w.Coda*ScoreClusters(a.Coda, b.Coda)
	return sum / total / n
}

// ScoreVowels returns 1 minus the normalised Euclidean distance between the
// two vowels on the vowel chart. It is 0 when either vowel or its position is
// missing.
func (f *FeatureScorer) ScoreVowels(a, b *phoneme.Stressed) float64 {
	if a == nil || b == nil || !a.HasPosition || !b.HasPosition {
		return 0
	}
	d := math.Hypot(a.Position.Front-b.Position.Front, a.Position.Height-b.Position.Height)
	return 1 - d/f.vowelNorm
}

// ScoreClusters compares two consonant clusters aligned from their last
// consonant. Two empty clusters score 1, one empty cluster scores 0. The sum
// of pairwise scores is divided by the longer length.
func ScoreClusters(a, b []phoneme.Phoneme) float64 {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 1
	case len(a) == 0 || len(b) == 0:
		return 0
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	var sum float64
	for k := 1; k <= shorter; k++ {
		sum += ScoreConsonants(a[len(a)-k], b[len(b)-k])
	}
	return sum / float64(longer)
}

// ScoreConsonants returns 0.05 for matching voicing, plus 0.625 for matching
// manner, plus 0.325 for matching place.
func ScoreConsonants(a, b phoneme.Phoneme) float64 {
	var s float64
	if a.Voiced == b.Voiced {
		s += voicingScore
	}
	if a.Manner == b.Manner {
		s += mannerScore
	}
	if a.Place == b.Place {
		s += placeScore
	}
	return s
}
