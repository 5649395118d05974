package rhyme

import (
	"math"

	"github.com/MrWong99/rhymekit/internal/simtable"
	"github.com/MrWong99/rhymekit/pkg/phoneme"
)

// DefaultEmptyCodaBonus is the score of two syllables that both lack a coda.
const DefaultEmptyCodaBonus = 3.0

// direction records which neighbour produced a cell of the alignment grid.
type direction uint8

const (
	diagonal direction = iota
	left
	up
)

// AlignerOption configures an [Aligner].
type AlignerOption func(*Aligner)

// WithEmptyCodaBonus sets the score returned when both codas are empty.
// Default: 3.0.
func WithEmptyCodaBonus(v float64) AlignerOption {
	return func(a *Aligner) {
		a.emptyBonus = v
	}
}

// WithAccumulatedUnmatched makes the one-sided case sum the boundary cost of
// every consonant on the non-empty side. By default only the last consonant's
// cost is kept.
func WithAccumulatedUnmatched(accumulate bool) AlignerOption {
	return func(a *Aligner) {
		a.accumulate = accumulate
	}
}

// Aligner scores two consonant clusters against each other.
type Aligner struct {
	table      *simtable.Table
	emptyBonus float64
	accumulate bool
}

// NewAligner returns an [Aligner] reading phoneme scores from table.
func NewAligner(table *simtable.Table, opts ...AlignerOption) *Aligner {
	a := &Aligner{
		table:      table,
		emptyBonus: DefaultEmptyCodaBonus,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Align returns the similarity of two codas; higher is more similar.
//
// Interior consonants are matched one-to-one. A consonant may stay unmatched
// only at the leading edge (costed with [simtable.Start]) or as a trailing
// run once the other side is exhausted (costed with [simtable.End]). The
// accumulated score is divided by the length of the winning path. Undefined
// pair scores simply make a path unattractive; they are never reported.
func (a *Aligner) Align(coda1, coda2 []phoneme.Phoneme) float64 {
	n1, n2 := len(coda1), len(coda2)
	switch {
	case n1 == 0 && n2 == 0:
		return a.emptyBonus
	case n1 == 0:
		return a.oneSided(coda2) / float64(n2)
	case n2 == 0:
		return a.oneSided(coda1) / float64(n1)
	}

	score, dirs := a.fill(coda1, coda2)
	return score[n1][n2] / float64(pathLength(dirs, n1, n2))
}

// fill computes the alignment grid for two non-empty codas. Cell (i, j) holds
// the best score for aligning coda1[:i] with coda2[:j] and the move that
// produced it. Ties prefer diagonal, then up, then left.
func (a *Aligner) fill(coda1, coda2 []phoneme.Phoneme) ([][]float64, [][]direction) {
	n1, n2 := len(coda1), len(coda2)
	score := make([][]float64, n1+1)
	dirs := make([][]direction, n1+1)
	for i := range score {
		score[i] = make([]float64, n2+1)
		dirs[i] = make([]direction, n2+1)
	}
	for i := 1; i <= n1; i++ {
		score[i][0] = score[i-1][0] + a.table.BoundaryScore(simtable.Start, coda1[i-1].ID)
		dirs[i][0] = up
	}
	for j := 1; j <= n2; j++ {
		score[0][j] = score[0][j-1] + a.table.BoundaryScore(simtable.Start, coda2[j-1].ID)
		dirs[0][j] = left
	}

	for i := 1; i <= n1; i++ {
		for j := 1; j <= n2; j++ {
			best := score[i-1][j-1] + a.table.Score(coda1[i-1].ID, coda2[j-1].ID)
			dir := diagonal

			if j == n2 {
				if s := score[i-1][j] + a.table.BoundaryScore(simtable.End, coda1[i-1].ID); s > best {
					best, dir = s, up
				}
			}
			if i == n1 {
				if s := score[i][j-1] + a.table.BoundaryScore(simtable.End, coda2[j-1].ID); s > best {
					best, dir = s, left
				}
			}
			score[i][j] = best
			dirs[i][j] = dir
		}
	}

	return score, dirs
}

// oneSided scores a coda against an empty one.
func (a *Aligner) oneSided(coda []phoneme.Phoneme) float64 {
	var v float64
	for _, c := range coda {
		m := math.Max(
			a.table.BoundaryScore(simtable.Start, c.ID),
			a.table.BoundaryScore(simtable.End, c.ID),
		)
		if a.accumulate {
			v += m
		} else {
			v = m
		}
	}
	return v
}

// pathLength walks the recorded directions from (i, j) back to the origin and
// counts the steps.
func pathLength(dirs [][]direction, i, j int) int {
	steps := 0
	for i > 0 || j > 0 {
		switch dirs[i][j] {
		case diagonal:
			i, j = i-1, j-1
		case up:
			i--
		case left:
			j--
		}
		steps++
	}
	return steps
}
