// Package search finds rhymes for a pronunciation across a whole phonetic
// dictionary.
//
// A [Searcher] scores every syllabified dictionary word against the query
// with a word scorer and buckets the words that reach the threshold by their
// exact score. The scan is exhaustive; with [WithWorkers] it is split across
// goroutines and yields the same [Result] as the serial scan.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrWong99/rhymekit/internal/observe"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

// ErrNoRhyme is returned when the query has no pronunciation to rhyme with.
var ErrNoRhyme = errors.New("search: no rhyme found")

// DefaultWordPattern accepts words made of letters and apostrophes.
var DefaultWordPattern = regexp.MustCompile(`^[\p{L}\p{M}']+$`)

// chunkSize is the number of words one parallel task scores.
const chunkSize = 512

// Dictionary is the phonetic dictionary consumed by a [Searcher].
type Dictionary interface {
	// Words lists every dictionary word.
	Words() []string

	// Pronunciations returns all pronunciations of word.
	Pronunciations(word string) []syllable.Pronunciation

	// Syllabified reports whether word's syllable boundaries are trusted.
	Syllabified(word string) bool
}

// Scorer scores two pronunciations. [rhyme.WordScorer] satisfies it.
type Scorer interface {
	Score(p1, p2 syllable.Pronunciation) float64
}

// Option is a functional option for configuring a [Searcher].
type Option func(*Searcher)

// WithWorkers sets how many goroutines scan the dictionary. Values below 2
// select the serial scan. Default: 1.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		s.workers = n
	}
}

// WithExcludeHomophones makes [Searcher.FindForWord] drop candidates that
// share a Double Metaphone code with the query word, such as spelling
// variants (night, knight, nite) and the query word itself.
func WithExcludeHomophones(exclude bool) Option {
	return func(s *Searcher) {
		s.excludeHomophones = exclude
	}
}

// WithWordPattern replaces [DefaultWordPattern].
func WithWordPattern(re *regexp.Regexp) Option {
	return func(s *Searcher) {
		if re != nil {
			s.pattern = re
		}
	}
}

// WithMetrics records searches on m instead of [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Searcher) {
		s.metrics = m
	}
}

// WithLogger sets the logger for search summaries. Default: [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = l
	}
}

// Searcher scans a dictionary for rhymes. It is read-only after construction
// and safe for concurrent use.
type Searcher struct {
	dict              Dictionary
	scorer            Scorer
	workers           int
	excludeHomophones bool
	pattern           *regexp.Regexp
	metrics           *observe.Metrics
	logger            *slog.Logger
}

// New returns a [Searcher] over dict using scorer.
func New(dict Dictionary, scorer Scorer, opts ...Option) *Searcher {
	s := &Searcher{
		dict:    dict,
		scorer:  scorer,
		workers: 1,
		pattern: DefaultWordPattern,
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	return s
}

// ClampThreshold limits threshold to [0, 1]. NaN maps to 0.
func ClampThreshold(threshold float64) float64 {
	if math.IsNaN(threshold) {
		return 0
	}
	return min(max(threshold, 0), 1)
}

// Find scores every syllabified dictionary word against query and returns
// the words whose score is at least threshold (clamped to [0, 1]), keyed by
// score. Words are lowercased. An empty query fails with [ErrNoRhyme].
//
// ctx is only consulted between parallel chunks; the serial scan runs to
// completion.
func (s *Searcher) Find(ctx context.Context, query syllable.Pronunciation, threshold float64) (Result, error) {
	if len(query) == 0 {
		return nil, ErrNoRhyme
	}
	return s.run(ctx, []syllable.Pronunciation{query}, ClampThreshold(threshold), nil)
}

// FindForWord looks word up in the dictionary and searches with every one of
// its pronunciations, merging the results. A word without pronunciations
// fails with [ErrNoRhyme].
func (s *Searcher) FindForWord(ctx context.Context, word string, threshold float64) (Result, error) {
	prons := s.dict.Pronunciations(word)
	queries := make([]syllable.Pronunciation, 0, len(prons))
	for _, p := range prons {
		if len(p) > 0 {
			queries = append(queries, p)
		}
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoRhyme, word)
	}

	var exclude map[string]struct{}
	if s.excludeHomophones {
		exclude = codesFor(lower(word))
	}
	return s.run(ctx, queries, ClampThreshold(threshold), exclude)
}

func (s *Searcher) run(ctx context.Context, queries []syllable.Pronunciation, threshold float64, exclude map[string]struct{}) (Result, error) {
	ctx, span := observe.StartSpan(ctx, "search.find")
	defer span.End()

	mode := "serial"
	if s.workers > 1 {
		mode = "parallel"
	}
	span.SetAttributes(
		attribute.Float64("threshold", threshold),
		attribute.Int("queries", len(queries)),
		attribute.String("mode", mode),
	)

	start := time.Now()
	words := s.candidates(s.dict.Words(), exclude)

	var (
		res        Result
		candidates int
		err        error
	)
	if mode == "parallel" {
		res, candidates, err = s.scanParallel(ctx, words, queries, threshold)
	} else {
		res, candidates = s.scan(words, queries, threshold)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	elapsed := time.Since(start)
	matches := res.Len()
	s.metrics.RecordSearch(ctx, mode, candidates, matches, elapsed)
	span.SetAttributes(
		attribute.Int("candidates", candidates),
		attribute.Int("matches", matches),
	)
	observe.Logger(ctx, s.logger).Debug("rhyme search complete",
		"mode", mode,
		"words", len(words),
		"candidates", candidates,
		"matches", matches,
		"threshold", threshold,
		"elapsed", elapsed,
	)
	return res, nil
}

// candidates filters the dictionary words down to those eligible for scoring.
func (s *Searcher) candidates(words []string, exclude map[string]struct{}) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !s.dict.Syllabified(w) || !s.pattern.MatchString(w) {
			continue
		}
		if exclude != nil && codesOverlap(exclude, codesFor(lower(w))) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// scan scores words serially and returns the result and the number of
// pronunciations scored.
func (s *Searcher) scan(words []string, queries []syllable.Pronunciation, threshold float64) (Result, int) {
	res := make(Result)
	scored := 0
	for _, w := range words {
		prons := s.dict.Pronunciations(w)
		if len(prons) == 0 {
			continue
		}
		key := lower(w)
		for _, p := range prons {
			for _, q := range queries {
				scored++
				if score := s.scorer.Score(q, p); score >= threshold {
					res.add(score, key)
				}
			}
		}
	}
	return res, scored
}

// scanParallel splits words into chunks scored by a bounded errgroup.
func (s *Searcher) scanParallel(ctx context.Context, words []string, queries []syllable.Pronunciation, threshold float64) (Result, int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var (
		mu     sync.Mutex
		res    = make(Result)
		scored int
	)
	for lo := 0; lo < len(words); lo += chunkSize {
		chunk := words[lo:min(lo+chunkSize, len(words))]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, n := s.scan(chunk, queries, threshold)
			mu.Lock()
			res.merge(part)
			scored += n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}
	return res, scored, nil
}

func lower(word string) string {
	return cases.Lower(language.Und).String(word)
}
