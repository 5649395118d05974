package rhyme_test

import (
	"testing"

	"github.com/MrWong99/rhymekit/internal/rhyme"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

func TestMatrixScorer_EmptyCodas(t *testing.T) {
	t.Parallel()

	m := rhyme.NewMatrixScorer(testTable())

	if got := m.ScoreSyllables(syl("AA1"), syl("AA1")); got != 13 {
		t.Errorf("ScoreSyllables(AA, AA) = %v, want 13 (10 vowel + 3 coda + 0 stress)", got)
	}
	if got := m.ScoreSyllables(syl("AA1"), syl("EH1")); got != 5 {
		t.Errorf("ScoreSyllables(AA, EH) = %v, want 5 (2 vowel + 3 coda + 0 stress)", got)
	}
}

func TestMatrixScorer_WithCoda(t *testing.T) {
	t.Parallel()

	m := rhyme.NewMatrixScorer(testTable())
	// 10 (AA/AA) + 0.35 (T vs T K).
	if got := m.ScoreSyllables(syl("AA1 T"), syl("AA1 T K")); !approx(got, 10.35) {
		t.Errorf("ScoreSyllables = %v, want 10.35", got)
	}
}

func TestMatrixScorer_MissingNucleus(t *testing.T) {
	t.Parallel()

	m := rhyme.NewMatrixScorer(testTable())
	noVowel := syllable.Syllable{}
	if got := m.ScoreSyllables(noVowel, syl("AA1")); got != 3 {
		t.Errorf("ScoreSyllables(no nucleus, AA) = %v, want 3 (coda bonus only)", got)
	}
}

func TestMatrixScorer_SelfSimilarityIsMaximal(t *testing.T) {
	t.Parallel()

	m := rhyme.NewMatrixScorer(testTable())
	self := m.ScoreSyllables(syl("AA1 T"), syl("AA1 T"))
	for _, other := range []string{"AA1 K", "AA1 T K", "AA1", "AA1 K T"} {
		if got := m.ScoreSyllables(syl("AA1 T"), syl(other)); got > self {
			t.Errorf("ScoreSyllables(AA1 T, %s) = %v exceeds self score %v", other, got, self)
		}
	}
}

func TestMatrixScorer_StressHook(t *testing.T) {
	t.Parallel()

	stress := func(a, b syllable.Syllable) float64 {
		if a.Nucleus.Stress == b.Nucleus.Stress {
			return 1
		}
		return 0
	}
	m := rhyme.NewMatrixScorer(testTable(), rhyme.WithStress(stress))
	if got := m.ScoreSyllables(syl("AA1"), syl("AA1")); got != 14 {
		t.Errorf("same stress = %v, want 14", got)
	}
	if got := m.ScoreSyllables(syl("AA1"), syl("AA0")); got != 13 {
		t.Errorf("different stress = %v, want 13", got)
	}
}

func TestMatrixScorer_CustomAligner(t *testing.T) {
	t.Parallel()

	tbl := testTable()
	m := rhyme.NewMatrixScorer(tbl, rhyme.WithAligner(rhyme.NewAligner(tbl, rhyme.WithEmptyCodaBonus(0))))
	if got := m.ScoreSyllables(syl("AA1"), syl("AA1")); got != 10 {
		t.Errorf("ScoreSyllables with zero bonus = %v, want 10", got)
	}
}

func TestScoreConsonants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"T", "T", 1},
		{"P", "B", 0.95},
		{"T", "S", 0.375},
		{"K", "B", 0.625},
		{"M", "S", 0},
		{"M", "Z", 0.05},
	}
	for _, tc := range tests {
		got := rhyme.ScoreConsonants(cluster(tc.a)[0], cluster(tc.b)[0])
		if !approx(got, tc.want) {
			t.Errorf("ScoreConsonants(%s,%s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestScoreClusters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1},
		{"one empty", []string{"T"}, nil, 0},
		{"equal", []string{"S", "T"}, []string{"S", "T"}, 1},
		{"right aligned", []string{"S", "T"}, []string{"T"}, 0.5},
		{"right aligned partial", []string{"P"}, []string{"S", "B"}, 0.475},
	}
	for _, tc := range tests {
		got := rhyme.ScoreClusters(cluster(tc.a...), cluster(tc.b...))
		if !approx(got, tc.want) {
			t.Errorf("%s: ScoreClusters(%v,%v) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFeatureScorer_ScoreVowels(t *testing.T) {
	t.Parallel()

	f := rhyme.NewFeatureScorer()
	same := syl("IY1").Nucleus
	if got := f.ScoreVowels(same, same); got != 1 {
		t.Errorf("ScoreVowels(IY, IY) = %v, want 1", got)
	}
	// IY (12,12) and AA (0,0) are sqrt(288) apart.
	want := 1 - 16.970562748477143/20
	if got := f.ScoreVowels(syl("IY1").Nucleus, syl("AA1").Nucleus); !approx(got, want) {
		t.Errorf("ScoreVowels(IY, AA) = %v, want %v", got, want)
	}
	if got := f.ScoreVowels(nil, same); got != 0 {
		t.Errorf("ScoreVowels(nil, IY) = %v, want 0", got)
	}

	wide := rhyme.NewFeatureScorer(rhyme.WithVowelNorm(40))
	if got := wide.ScoreVowels(syl("IY1").Nucleus, syl("AA1").Nucleus); !approx(got, 1-16.970562748477143/40) {
		t.Errorf("ScoreVowels with norm 40 = %v", got)
	}
}

func TestFeatureScorer_ScoreSyllables(t *testing.T) {
	t.Parallel()

	f := rhyme.NewFeatureScorer()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		// All three components present and identical: 8/8/3.
		{"identical full", "K AE1 T", "K AE1 T", 1.0 / 3},
		// Only the nucleus present on both sides: 6/6/1.
		{"nucleus only", "AA1", "AA1", 1},
		// Onset K vs B scores 0.625: (0.625 + 6 + 1) / 8 / 3.
		{"onset differs", "K AE1 T", "B AE1 T", 7.625 / 8 / 3},
		// Coda present on one side only scores 0 for that slot: (6 + 0) / 7 / 2.
		{"one sided coda", "AE1", "AE1 T", 6.0 / 7 / 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := f.ScoreSyllables(syl(tc.a), syl(tc.b)); !approx(got, tc.want) {
				t.Errorf("ScoreSyllables(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestFeatureScorer_NothingToCompare(t *testing.T) {
	t.Parallel()

	f := rhyme.NewFeatureScorer()
	if got := f.ScoreSyllables(syllable.Syllable{}, syllable.Syllable{}); got != 0 {
		t.Errorf("ScoreSyllables(empty, empty) = %v, want 0", got)
	}
}

func TestFeatureScorer_Weights(t *testing.T) {
	t.Parallel()

	f := rhyme.NewFeatureScorer(rhyme.WithWeights(rhyme.Weights{Onset: 0, Nucleus: 1, Coda: 1}))
	// Onset keeps n=3 because it is present, but carries no weight: (1 + 1) / 2 / 3.
	if got := f.ScoreSyllables(syl("K AE1 T"), syl("B AE1 T")); !approx(got, 1.0/3) {
		t.Errorf("ScoreSyllables with zero onset weight = %v, want 1/3", got)
	}
}
