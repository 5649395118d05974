// Package config loads and validates the rhymekit YAML configuration and
// watches it for changes.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to the matching [slog.Level]. Unknown or empty levels map to
// [slog.LevelInfo].
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Strategy selects the syllable scoring algorithm.
type Strategy string

const (
	// StrategyMatrix scores vowels and codas with the similarity table.
	StrategyMatrix Strategy = "matrix"

	// StrategyWeighted scores syllables by articulatory features.
	StrategyWeighted Strategy = "weighted"
)

// Default values filled in by [Config.ApplyDefaults].
const (
	DefaultLogLevel       = LogInfo
	DefaultDelimiter      = ","
	DefaultStrategy       = StrategyMatrix
	DefaultEmptyCodaBonus = 3.0
	DefaultVowelNorm      = 20.0
	DefaultThreshold      = 0.5
	DefaultWorkers        = 1
	DefaultServiceName    = "rhymekit"
)

// Config is the root configuration structure for rhymekit.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	Table      TableConfig      `yaml:"table"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Search     SearchConfig     `yaml:"search"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// TableConfig locates the phoneme similarity table.
type TableConfig struct {
	// Path is the delimited similarity table file.
	Path string `yaml:"path"`

	// Delimiter is the single-character field separator. Default: ",".
	Delimiter string `yaml:"delimiter"`
}

// ScoringConfig selects and tunes the syllable scorer.
type ScoringConfig struct {
	// Strategy names a scorer registered in the [Registry].
	Strategy Strategy `yaml:"strategy"`

	// EmptyCodaBonus is the coda score when both codas are empty. Zero is a
	// valid setting; only an absent value selects [DefaultEmptyCodaBonus].
	EmptyCodaBonus *float64 `yaml:"empty_coda_bonus"`

	// AccumulateUnmatched sums boundary scores over every consonant of a coda
	// matched against an empty one instead of keeping only the last.
	AccumulateUnmatched bool `yaml:"accumulate_unmatched"`

	// Weights are the per-component weights of the weighted strategy. A nil
	// value selects the defaults.
	Weights *WeightsConfig `yaml:"weights"`

	// VowelNorm divides the vowel chart distance in the weighted strategy.
	// Zero selects [DefaultVowelNorm].
	VowelNorm float64 `yaml:"vowel_norm"`
}

// WeightsConfig holds syllable component weights.
type WeightsConfig struct {
	Onset   float64 `yaml:"onset"`
	Nucleus float64 `yaml:"nucleus"`
	Coda    float64 `yaml:"coda"`
}

// SearchConfig tunes corpus search.
type SearchConfig struct {
	// Threshold is the minimum score a match must reach. Values outside
	// [0, 1] are clamped at search time.
	Threshold *float64 `yaml:"threshold"`

	// Workers is the number of goroutines scanning the dictionary.
	Workers int `yaml:"workers"`

	// ExcludeHomophones drops spelling variants of the query word.
	ExcludeHomophones bool `yaml:"exclude_homophones"`
}

// DictionaryConfig locates the phonetic dictionary.
type DictionaryConfig struct {
	// Path is a word<TAB>pronunciation file.
	Path string `yaml:"path"`
}

// TelemetryConfig controls installation of the OpenTelemetry SDK.
type TelemetryConfig struct {
	// Enabled installs global meter and tracer providers.
	Enabled bool `yaml:"enabled"`

	// ServiceName is reported in telemetry. Default: "rhymekit".
	ServiceName string `yaml:"service_name"`
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Table.Delimiter == "" {
		c.Table.Delimiter = DefaultDelimiter
	}
	if c.Scoring.Strategy == "" {
		c.Scoring.Strategy = DefaultStrategy
	}
	if c.Scoring.EmptyCodaBonus == nil {
		b := DefaultEmptyCodaBonus
		c.Scoring.EmptyCodaBonus = &b
	}
	if c.Scoring.Weights == nil {
		c.Scoring.Weights = &WeightsConfig{Onset: 1, Nucleus: 6, Coda: 1}
	}
	if c.Scoring.VowelNorm == 0 {
		c.Scoring.VowelNorm = DefaultVowelNorm
	}
	if c.Search.Threshold == nil {
		th := DefaultThreshold
		c.Search.Threshold = &th
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = DefaultWorkers
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
}

// EmptyCodaBonusOrDefault returns the configured empty coda bonus, or
// [DefaultEmptyCodaBonus] when unset.
func (s ScoringConfig) EmptyCodaBonusOrDefault() float64 {
	if s.EmptyCodaBonus == nil {
		return DefaultEmptyCodaBonus
	}
	return *s.EmptyCodaBonus
}

// ThresholdOrDefault returns the configured search threshold, or [DefaultThreshold]
// when unset.
func (s SearchConfig) ThresholdOrDefault() float64 {
	if s.Threshold == nil {
		return DefaultThreshold
	}
	return *s.Threshold
}
