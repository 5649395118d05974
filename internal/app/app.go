// Package app wires the rhymekit subsystems into a ready-to-use application.
//
// New builds the logger, similarity table source, dictionary, scorer and
// searcher from a [config.Config]. Watch keeps scoring and search settings in
// sync with the config file, and Shutdown releases everything New and Watch
// acquired.
//
// For testing, inject a dictionary, table or registry via functional options.
// When an option is not provided, New loads them from the config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/MrWong99/rhymekit/internal/config"
	"github.com/MrWong99/rhymekit/internal/dictionary"
	"github.com/MrWong99/rhymekit/internal/observe"
	"github.com/MrWong99/rhymekit/internal/rhyme"
	"github.com/MrWong99/rhymekit/internal/search"
	"github.com/MrWong99/rhymekit/internal/simtable"
	"github.com/MrWong99/rhymekit/pkg/syllable"
)

// ErrNoDictionary is returned by [New] when neither [WithDictionary] nor
// dictionary.path supplies a dictionary.
var ErrNoDictionary = errors.New("app: no dictionary configured")

// engine is the immutable scoring state swapped on config reloads.
type engine struct {
	words     *rhyme.WordScorer
	searcher  *search.Searcher
	threshold float64
}

// App owns the rhymekit subsystems.
type App struct {
	logOut   io.Writer
	level    slog.LevelVar
	logger   *slog.Logger
	metrics  *observe.Metrics
	registry *config.Registry
	dict     search.Dictionary
	table    config.TableSource

	engine atomic.Pointer[engine]

	mu      sync.Mutex
	watcher *config.Watcher

	// closers run in reverse order during Shutdown.
	closers  []func(context.Context) error
	stopOnce sync.Once
}

// Option is a functional option for New.
type Option func(*App)

// WithDictionary injects a dictionary instead of loading dictionary.path.
func WithDictionary(d search.Dictionary) Option {
	return func(a *App) { a.dict = d }
}

// WithTable injects a similarity table instead of loading table.path.
func WithTable(t *simtable.Table) Option {
	return func(a *App) {
		a.table = func() (*simtable.Table, error) { return t, nil }
	}
}

// WithRegistry replaces the scorer registry built by [DefaultRegistry].
func WithRegistry(r *config.Registry) Option {
	return func(a *App) { a.registry = r }
}

// WithLogOutput sets where the application logger writes. Default: stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logOut = w }
}

// WithMetrics records table loads and searches on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New creates an App from cfg. cfg must have been validated; defaults are
// applied to a copy.
//
// The similarity table is loaded lazily, the first time a scorer needs it.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	c := *cfg
	c.ApplyDefaults()

	a := &App{logOut: os.Stderr}
	for _, o := range opts {
		o(a)
	}
	a.level.Set(c.LogLevel.Level())
	a.logger = observe.NewLogger(a.logOut, &a.level)
	if a.registry == nil {
		a.registry = DefaultRegistry()
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	if c.Telemetry.Enabled {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: c.Telemetry.ServiceName})
		if err != nil {
			return nil, fmt.Errorf("app: init telemetry: %w", err)
		}
		a.closers = append(a.closers, shutdown)
	}

	if a.table == nil && c.Table.Path != "" {
		delim, _ := utf8.DecodeRuneInString(c.Table.Delimiter)
		a.table = simtable.Once(c.Table.Path,
			simtable.WithDelimiter(delim),
			simtable.WithMetrics(a.metrics),
			simtable.WithLogger(a.logger),
		)
	}

	if a.dict == nil {
		if c.Dictionary.Path == "" {
			a.shutdownQuietly(ctx)
			return nil, ErrNoDictionary
		}
		d, err := dictionary.LoadFile(c.Dictionary.Path)
		if err != nil {
			a.shutdownQuietly(ctx)
			return nil, fmt.Errorf("app: load dictionary: %w", err)
		}
		a.logger.Info("dictionary loaded", "path", c.Dictionary.Path, "words", d.Len())
		a.dict = d
	}

	e, err := a.build(&c)
	if err != nil {
		a.shutdownQuietly(ctx)
		return nil, err
	}
	a.engine.Store(e)
	a.logger.Info("rhymekit ready",
		"strategy", c.Scoring.Strategy,
		"threshold", e.threshold,
		"workers", c.Search.Workers,
	)
	return a, nil
}

// DefaultRegistry returns a registry with the matrix and weighted strategies.
func DefaultRegistry() *config.Registry {
	r := config.NewRegistry()
	r.RegisterScorer(config.StrategyMatrix, newMatrixScorer)
	r.RegisterScorer(config.StrategyWeighted, newFeatureScorer)
	return r
}

func newMatrixScorer(cfg config.ScoringConfig, table config.TableSource) (rhyme.SyllableScoring, error) {
	if table == nil {
		return nil, errors.New("matrix scoring needs a similarity table")
	}
	t, err := table()
	if err != nil {
		return nil, err
	}
	aligner := rhyme.NewAligner(t,
		rhyme.WithEmptyCodaBonus(cfg.EmptyCodaBonusOrDefault()),
		rhyme.WithAccumulatedUnmatched(cfg.AccumulateUnmatched),
	)
	return rhyme.NewMatrixScorer(t, rhyme.WithAligner(aligner)), nil
}

func newFeatureScorer(cfg config.ScoringConfig, _ config.TableSource) (rhyme.SyllableScoring, error) {
	opts := []rhyme.FeatureOption{rhyme.WithVowelNorm(cfg.VowelNorm)}
	if w := cfg.Weights; w != nil {
		opts = append(opts, rhyme.WithWeights(rhyme.Weights{Onset: w.Onset, Nucleus: w.Nucleus, Coda: w.Coda}))
	}
	return rhyme.NewFeatureScorer(opts...), nil
}

// build creates the scoring state for cfg.
func (a *App) build(cfg *config.Config) (*engine, error) {
	s, err := a.registry.CreateScorer(cfg.Scoring, a.table)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	words := rhyme.NewWordScorer(s)
	return &engine{
		words: words,
		searcher: search.New(a.dict, words,
			search.WithWorkers(cfg.Search.Workers),
			search.WithExcludeHomophones(cfg.Search.ExcludeHomophones),
			search.WithMetrics(a.metrics),
			search.WithLogger(a.logger),
		),
		threshold: search.ClampThreshold(cfg.Search.ThresholdOrDefault()),
	}, nil
}

// Logger returns the application logger. Its level follows log_level,
// including changes picked up by [App.Watch].
func (a *App) Logger() *slog.Logger { return a.logger }

// Threshold returns the clamped search threshold in effect.
func (a *App) Threshold() float64 { return a.engine.Load().threshold }

// Score compares two pronunciations with the configured scorer.
func (a *App) Score(p1, p2 syllable.Pronunciation) float64 {
	return a.engine.Load().words.Score(p1, p2)
}

// Rhymes finds dictionary words rhyming with query at the configured
// threshold.
func (a *App) Rhymes(ctx context.Context, query syllable.Pronunciation) (search.Result, error) {
	e := a.engine.Load()
	return e.searcher.Find(ctx, query, e.threshold)
}

// RhymesForWord finds dictionary words rhyming with any pronunciation of
// word at the configured threshold.
func (a *App) RhymesForWord(ctx context.Context, word string) (search.Result, error) {
	e := a.engine.Load()
	return e.searcher.FindForWord(ctx, word, e.threshold)
}

// Watch polls the config file at path and applies log level, scoring and
// search changes without a restart. Table or dictionary changes are logged
// and ignored. Calling Watch again replaces the previous watcher.
func (a *App) Watch(path string, opts ...config.WatcherOption) error {
	w, err := config.NewWatcher(path, a.apply, opts...)
	if err != nil {
		return fmt.Errorf("app: watch config: %w", err)
	}
	a.mu.Lock()
	prev := a.watcher
	a.watcher = w
	a.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
	return nil
}

// apply is the [config.ChangeFunc] installed by Watch.
func (a *App) apply(_, cfg *config.Config, diff config.ConfigDiff) {
	if diff.LogLevelChanged {
		a.level.Set(diff.NewLogLevel.Level())
		a.logger.Info("log level changed", "level", diff.NewLogLevel)
	}
	if diff.TableChanged || diff.DictionaryChanged {
		a.logger.Warn("table and dictionary changes require a restart",
			"table_changed", diff.TableChanged,
			"dictionary_changed", diff.DictionaryChanged,
		)
	}
	if !diff.ScoringChanged && !diff.SearchChanged {
		return
	}
	e, err := a.build(cfg)
	if err != nil {
		a.logger.Error("config reload failed; keeping previous scorer", "err", err)
		return
	}
	a.engine.Store(e)
	a.logger.Info("scorer rebuilt",
		"strategy", cfg.Scoring.Strategy,
		"threshold", e.threshold,
	)
}

// Shutdown stops the config watcher and flushes telemetry. It respects the
// context deadline: if ctx expires, remaining closers are skipped and the
// context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		a.mu.Lock()
		w := a.watcher
		a.watcher = nil
		a.mu.Unlock()
		if w != nil {
			w.Stop()
		}

		var errs []error
		for i := len(a.closers) - 1; i >= 0; i-- {
			if err := ctx.Err(); err != nil {
				a.logger.Warn("shutdown deadline exceeded", "remaining", i+1)
				errs = append(errs, err)
				break
			}
			if err := a.closers[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		shutdownErr = errors.Join(errs...)
	})
	return shutdownErr
}

// shutdownQuietly releases partially initialised resources after a failed New.
func (a *App) shutdownQuietly(ctx context.Context) {
	if err := a.Shutdown(ctx); err != nil {
		a.logger.Warn("cleanup after failed start", "err", err)
	}
}
