package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// KnownStrategies lists the scoring strategies the application registers.
// Used by [Validate] to warn about unrecognised strategy names.
var KnownStrategies = []Strategy{StrategyMatrix, StrategyWeighted}

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. It is a convenience wrapper around
// [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and validates
// the result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
// Questionable but usable values are logged at warn level.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Table
	if d := cfg.Table.Delimiter; d != "" {
		if utf8.RuneCountInString(d) != 1 {
			errs = append(errs, fmt.Errorf("table.delimiter %q must be a single character", d))
		} else if r, _ := utf8.DecodeRuneInString(d); r == '"' || r == '\n' || r == '\r' || r == utf8.RuneError {
			errs = append(errs, fmt.Errorf("table.delimiter %q is not a valid field separator", d))
		}
	}
	if cfg.Scoring.Strategy == StrategyMatrix && cfg.Table.Path == "" {
		errs = append(errs, fmt.Errorf("table.path is required for scoring strategy %q", StrategyMatrix))
	}

	// Scoring
	if s := cfg.Scoring.Strategy; s != "" && !slices.Contains(KnownStrategies, s) {
		slog.Warn("unknown scoring strategy; it must be registered before use",
			"strategy", s,
			"known", KnownStrategies,
		)
	}
	if w := cfg.Scoring.Weights; w != nil {
		if w.Onset < 0 || w.Nucleus < 0 || w.Coda < 0 {
			errs = append(errs, fmt.Errorf("scoring.weights must not be negative (onset %.2f, nucleus %.2f, coda %.2f)", w.Onset, w.Nucleus, w.Coda))
		}
		if w.Onset+w.Nucleus+w.Coda == 0 {
			errs = append(errs, errors.New("scoring.weights must not all be zero"))
		}
	}
	if cfg.Scoring.VowelNorm < 0 {
		errs = append(errs, fmt.Errorf("scoring.vowel_norm %.2f must be positive", cfg.Scoring.VowelNorm))
	}
	if cfg.Scoring.Strategy == StrategyWeighted && cfg.Scoring.AccumulateUnmatched {
		slog.Warn("scoring.accumulate_unmatched has no effect with the weighted strategy")
	}

	// Search
	if th := cfg.Search.Threshold; th != nil && (*th < 0 || *th > 1) {
		slog.Warn("search.threshold is outside [0, 1] and will be clamped", "threshold", *th)
	}
	if cfg.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers %d must not be negative", cfg.Search.Workers))
	}

	return errors.Join(errs...)
}
