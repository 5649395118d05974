package rhyme

import (
	"github.com/MrWong99/rhymekit/internal/simtable"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

// SyllableScoring scores the similarity of two syllables. Implementations
// must be safe for concurrent use.
type SyllableScoring interface {
	ScoreSyllables(a, b syllable.Syllable) float64
}

// StressFunc contributes a stress term to a [MatrixScorer] score.
type StressFunc func(a, b syllable.Syllable) float64

// NoStress is the default [StressFunc]; it always contributes 0.
func NoStress(syllable.Syllable, syllable.Syllable) float64 { return 0 }

// MatrixOption configures a [MatrixScorer].
type MatrixOption func(*MatrixScorer)

// WithStress sets the stress term. Default: [NoStress].
func WithStress(fn StressFunc) MatrixOption {
	return func(m *MatrixScorer) {
		if fn != nil {
			m.stress = fn
		}
	}
}

// WithAligner replaces the coda aligner. Default: [NewAligner] on the same
// table with default options.
func WithAligner(a *Aligner) MatrixOption {
	return func(m *MatrixScorer) {
		if a != nil {
			m.aligner = a
		}
	}
}

// MatrixScorer scores syllables as vowel score + coda alignment + stress,
// all read from a similarity table.
type MatrixScorer struct {
	table   *simtable.Table
	aligner *Aligner
	stress  StressFunc
}

var _ SyllableScoring = (*MatrixScorer)(nil)

// NewMatrixScorer returns a [MatrixScorer] backed by table.
func NewMatrixScorer(table *simtable.Table, opts ...MatrixOption) *MatrixScorer {
	m := &MatrixScorer{
		table:   table,
		aligner: NewAligner(table),
		stress:  NoStress,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ScoreSyllables implements [SyllableScoring]. A missing nucleus on either
// side contributes 0 for the vowel term.
func (m *MatrixScorer) ScoreSyllables(a, b syllable.Syllable) float64 {
	var vowel float64
	if a.Nucleus != nil && b.Nucleus != nil {
		vowel = m.table.Score(a.Nucleus.ID, b.Nucleus.ID)
	}
	return vowel + m.aligner.Align(a.Coda, b.Coda) + m.stress(a, b)
}
