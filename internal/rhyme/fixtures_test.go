package rhyme_test

import (
	"github.com/MrWong99/rhymekit/internal/simtable"
	"github.com/MrWong99/rhymekit/pkg/phoneme"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

var (
	aa  = phoneme.MustLookup("AA")
	eh  = phoneme.MustLookup("EH")
	tee = phoneme.MustLookup("T")
	k   = phoneme.MustLookup("K")
)

// testTable mirrors the small table used across rhyme tests.
func testTable() *simtable.Table {
	return simtable.NewBuilder().
		Pair(aa, aa, 10).
		Pair(aa, eh, 2).
		Pair(eh, eh, 9).
		Pair(tee, tee, 1).
		Pair(k, k, 1).
		Pair(tee, k, 0.4).
		Boundary(simtable.Start, tee, -0.5).
		Boundary(simtable.End, tee, -0.25).
		Boundary(simtable.Start, k, -0.6).
		Boundary(simtable.End, k, -0.3).
		Build()
}

func syl(text string) syllable.Syllable {
	return syllable.MustParse(text)[0]
}

func cluster(symbols ...string) []phoneme.Phoneme {
	out := make([]phoneme.Phoneme, len(symbols))
	for i, s := range symbols {
		out[i] = phoneme.MustLookup(s)
	}
	return out
}
