package config

// ConfigDiff describes what changed between two configs.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// ScoringChanged and SearchChanged can be applied without a restart.
	ScoringChanged bool
	SearchChanged  bool

	// TableChanged and DictionaryChanged require a restart.
	TableChanged      bool
	DictionaryChanged bool
}

// Any reports whether anything changed.
func (d ConfigDiff) Any() bool {
	return d.LogLevelChanged || d.ScoringChanged || d.SearchChanged || d.TableChanged || d.DictionaryChanged
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.LogLevel != new.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.LogLevel
	}
	d.ScoringChanged = !scoringEqual(old.Scoring, new.Scoring)
	d.SearchChanged = old.Search.ThresholdOrDefault() != new.Search.ThresholdOrDefault() ||
		old.Search.Workers != new.Search.Workers ||
		old.Search.ExcludeHomophones != new.Search.ExcludeHomophones
	d.TableChanged = old.Table != new.Table
	d.DictionaryChanged = old.Dictionary != new.Dictionary

	return d
}

func scoringEqual(a, b ScoringConfig) bool {
	if a.Strategy != b.Strategy ||
		a.EmptyCodaBonusOrDefault() != b.EmptyCodaBonusOrDefault() ||
		a.AccumulateUnmatched != b.AccumulateUnmatched ||
		a.VowelNorm != b.VowelNorm {
		return false
	}
	switch {
	case a.Weights == nil && b.Weights == nil:
		return true
	case a.Weights == nil || b.Weights == nil:
		return false
	}
	return *a.Weights == *b.Weights
}
