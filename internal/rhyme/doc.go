// Package rhyme scores phonetic similarity between syllables and words.
//
// The building blocks, leaves first:
//
//   - [Aligner] scores the best correspondence between two codas with a
//     bounded maximisation dynamic program over a [simtable.Table].
//   - [SyllableScoring] is implemented by [MatrixScorer] (table driven vowel
//     score plus coda alignment) and [FeatureScorer] (weighted onset, nucleus
//     and coda sub-scores from articulatory features).
//   - [WordScorer] aligns two pronunciations tail first, averages the
//     per-syllable scores and penalises length mismatch.
//
// Every scorer is immutable after construction and safe for concurrent use.
package rhyme
