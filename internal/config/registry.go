package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MrWong99/rhymekit/internal/rhyme"
	"github.com/MrWong99/rhymekit/internal/simtable"
)

// ErrScorerNotRegistered is returned by [Registry.CreateScorer] when no
// factory has been registered under the requested strategy.
var ErrScorerNotRegistered = errors.New("config: scorer not registered")

// TableSource returns the similarity table, loading it on first use.
// [simtable.Once] returns a TableSource.
type TableSource func() (*simtable.Table, error)

// ScorerFactory builds a syllable scorer from the scoring section. Factories
// that need the similarity table call table; it is nil when no table is
// configured.
type ScorerFactory func(cfg ScoringConfig, table TableSource) (rhyme.SyllableScoring, error)

// Registry maps strategy names to scorer factories. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	scorers map[Strategy]ScorerFactory
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{scorers: make(map[Strategy]ScorerFactory)}
}

// RegisterScorer registers factory under name. Registering the same name
// again replaces the previous factory.
func (r *Registry) RegisterScorer(name Strategy, factory ScorerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scorers[name] = factory
}

// CreateScorer builds the scorer selected by cfg.Strategy.
func (r *Registry) CreateScorer(cfg ScoringConfig, table TableSource) (rhyme.SyllableScoring, error) {
	r.mu.RLock()
	factory, ok := r.scorers[cfg.Strategy]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrScorerNotRegistered, cfg.Strategy)
	}
	s, err := factory(cfg, table)
	if err != nil {
		return nil, fmt.Errorf("config: create scorer %q: %w", cfg.Strategy, err)
	}
	return s, nil
}

// Strategies returns the registered strategy names in sorted order.
func (r *Registry) Strategies() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, 0, len(r.scorers))
	for name := range r.scorers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
