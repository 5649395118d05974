// Package simtable holds the symmetric phoneme similarity table that drives
// coda alignment and direct vowel scoring.
//
// A [Table] scores every pair of phonemes from the [phoneme] inventory and, in
// a separate index space, the cost of leaving a consonant unmatched at the
// start or end of a cluster ([Start] and [End]). Pairs that were never
// populated score negative infinity, which the aligner treats as "never align
// these two".
//
// Tables are immutable once built and safe for concurrent use.
package simtable

import (
	"fmt"
	"math"

	"github.com/MrWong99/rhymekit/pkg/phoneme"
)

// Boundary tags one of the two unmatched-consonant sentinels. Boundaries live
// alongside the phoneme index space, never inside it.
type Boundary uint8

const (
	// Start costs a consonant left unmatched before the aligned region.
	Start Boundary = iota + 1

	// End costs a consonant left unmatched after the aligned region.
	End
)

// String returns the label used for the boundary in table files.
func (b Boundary) String() string {
	switch b {
	case Start:
		return StartLabel
	case End:
		return EndLabel
	}
	return fmt.Sprintf("Boundary(%d)", uint8(b))
}

// Labels naming the boundary columns in a table file header.
const (
	StartLabel = "UNMATCHED_AT_START"
	EndLabel   = "UNMATCHED_AT_END"
)

// Undefined is the score of a pair that must never be aligned.
var Undefined = math.Inf(-1)

// Table is the symmetric phoneme similarity matrix plus boundary costs.
type Table struct {
	pairs [][]float64
	start []float64
	end   []float64
	width int
}

func newTable() *Table {
	n := phoneme.Count()
	t := &Table{
		pairs: make([][]float64, n),
		start: filled(n),
		end:   filled(n),
	}
	for i := range t.pairs {
		t.pairs[i] = filled(n)
	}
	return t
}

func filled(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = Undefined
	}
	return row
}

// Score returns the similarity between a and b. The result is symmetric and
// is [Undefined] for unpopulated pairs or out-of-range identities.
func (t *Table) Score(a, b phoneme.ID) float64 {
	if !t.valid(a) || !t.valid(b) {
		return Undefined
	}
	return t.pairs[a][b]
}

// BoundaryScore returns the cost of leaving p unmatched at boundary b.
func (t *Table) BoundaryScore(b Boundary, p phoneme.ID) float64 {
	if !t.valid(p) {
		return Undefined
	}
	switch b {
	case Start:
		return t.start[p]
	case End:
		return t.end[p]
	}
	return Undefined
}

// Width returns the number of columns the table was loaded from, including
// boundary columns. Tables built with a [Builder] report the number of
// distinct keys that were set.
func (t *Table) Width() int { return t.width }

func (t *Table) valid(id phoneme.ID) bool {
	return id >= 0 && int(id) < len(t.pairs)
}

// key addresses either a phoneme or a boundary.
type key struct {
	id       phoneme.ID
	boundary Boundary
}

func (k key) isBoundary() bool { return k.boundary != 0 }

// set writes v into both triangle positions. Boundary×boundary cells carry no
// meaning and are dropped.
func (t *Table) set(a, b key, v float64) {
	switch {
	case a.isBoundary() && b.isBoundary():
		return
	case a.isBoundary():
		t.setBoundary(a.boundary, b.id, v)
	case b.isBoundary():
		t.setBoundary(b.boundary, a.id, v)
	default:
		t.pairs[a.id][b.id] = v
		t.pairs[b.id][a.id] = v
	}
}

func (t *Table) setBoundary(b Boundary, id phoneme.ID, v float64) {
	if b == Start {
		t.start[id] = v
	} else {
		t.end[id] = v
	}
}
