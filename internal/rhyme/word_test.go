package rhyme_test

import (
	"testing"

	"github.com/MrWong99/rhymekit/internal/rhyme"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

func TestWordScorer_Empty(t *testing.T) {
	t.Parallel()

	w := rhyme.NewWordScorer(rhyme.NewFeatureScorer())
	cat := syllable.MustParse("K AE1 T")
	if got := w.Score(nil, cat); got != 0 {
		t.Errorf("Score(nil, cat) = %v, want 0", got)
	}
	if got := w.Score(cat, syllable.Pronunciation{}); got != 0 {
		t.Errorf("Score(cat, empty) = %v, want 0", got)
	}
}

func TestWordScorer_EqualLengthIsPlainAverage(t *testing.T) {
	t.Parallel()

	f := rhyme.NewFeatureScorer()
	w := rhyme.NewWordScorer(f)

	p1 := syllable.MustParse("HH AE1 - P IY0")
	p2 := syllable.MustParse("S AE1 - P IY0")
	want := (f.ScoreSyllables(p1[0], p2[0]) + f.ScoreSyllables(p1[1], p2[1])) / 2
	if got := w.Score(p1, p2); !approx(got, want) {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestWordScorer_TailAligned(t *testing.T) {
	t.Parallel()

	m := rhyme.NewMatrixScorer(testTable())
	w := rhyme.NewWordScorer(m)

	// Only the last syllable of the longer word is compared: 13 * (0.5+1)/2.
	got := w.Score(syllable.MustParse("EH1 - AA1"), syllable.MustParse("AA1"))
	if !approx(got, 13*0.75) {
		t.Errorf("Score(EH-AA, AA) = %v, want %v", got, 13*0.75)
	}
	// Head alignment would compare EH with AA and give 5 * 0.75.
	if approx(got, 5*0.75) {
		t.Error("Score aligned syllables from the start instead of the end")
	}
}

func TestWordScorer_LengthPenalty(t *testing.T) {
	t.Parallel()

	w := rhyme.NewWordScorer(rhyme.NewFeatureScorer())
	cat := syllable.MustParse("K AE1 T")

	base := w.Score(cat, cat)
	if !approx(base, 1.0/3) {
		t.Fatalf("Score(cat, cat) = %v, want 1/3", base)
	}

	longer := syllable.MustParse("HH AH0 - K AE1 T")
	penalised := w.Score(longer, cat)
	if !approx(penalised, base*0.75) {
		t.Errorf("Score(2 syllables, 1 syllable) = %v, want %v", penalised, base*0.75)
	}
	if penalised > base {
		t.Errorf("length mismatch raised score from %v to %v", base, penalised)
	}

	// Symmetric in argument order.
	if got := w.Score(cat, longer); !approx(got, penalised) {
		t.Errorf("Score(cat, longer) = %v, want %v", got, penalised)
	}

	muchLonger := syllable.MustParse("AH0 - B AH0 - HH AH0 - K AE1 T")
	if got := w.Score(muchLonger, cat); got > penalised {
		t.Errorf("4 vs 1 syllables scored %v, higher than 2 vs 1 (%v)", got, penalised)
	}
}

// constScorer scores every syllable pair 1, so Score returns the penalty
// factor alone.
type constScorer struct{}

func (constScorer) ScoreSyllables(_, _ syllable.Syllable) float64 { return 1 }

func TestWordScorer_PenaltyFactor(t *testing.T) {
	t.Parallel()

	w := rhyme.NewWordScorer(constScorer{})
	cat := syllable.MustParse("K AE1 T")

	tests := []struct {
		name   string
		longer string
		want   float64
	}{
		{"diff 1", "HH AH0 - K AE1 T", 1.5 / 2},
		{"diff 2", "B AH0 - HH AH0 - K AE1 T", 2.0 / 3},
		// Half a syllable of credit survives an odd difference: 2.5/4, not 2/4.
		{"diff 3", "AH0 - B AH0 - HH AH0 - K AE1 T", 2.5 / 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := w.Score(syllable.MustParse(tc.longer), cat); !approx(got, tc.want) {
				t.Errorf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}
