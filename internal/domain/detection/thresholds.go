package detection

import "fmt"

// Thresholds holds the empirically tuned constants used by the variant strategies
//
// The defaults were calibrated against real scam links. Changing them moves the
// false-positive/false-negative balance, so overrides should come with a labeled
// sample set.
type Thresholds struct {
	// SimilarityGate is the minimum look-alike LCS ratio a pair needs before the
	// substitution, insertion and homograph strategies run
	SimilarityGate float64 `yaml:"similarity_gate"`

	// SubstitutionMinRatio is the minimum exact LCS ratio for a substitution hit
	SubstitutionMinRatio float64 `yaml:"substitution_min_ratio"`

	// SubstitutionMaxLengthDiff is the length pre-filter for the substitution strategy
	SubstitutionMaxLengthDiff int `yaml:"substitution_max_length_diff"`

	ShortLabelMaxDistance  int `yaml:"short_label_max_distance"`  // labels up to 10 chars
	MediumLabelMaxDistance int `yaml:"medium_label_max_distance"` // labels up to 15 chars
	LongLabelMaxDistance   int `yaml:"long_label_max_distance"`

	// MaxHomographSubstitutions caps look-alike swaps in one label
	MaxHomographSubstitutions int `yaml:"max_homograph_substitutions"`

	// MaxTrailingLetters caps the alphabetic run appended to a safe base label
	MaxTrailingLetters int `yaml:"max_trailing_letters"`

	// MinBaseLength is the shortest safe base label the generic insertion rules apply to
	MinBaseLength int `yaml:"min_base_length"`
}

// DefaultThresholds returns the calibrated defaults
func DefaultThresholds() Thresholds {
	return Thresholds{
		SimilarityGate:            0.8,
		SubstitutionMinRatio:      0.7,
		SubstitutionMaxLengthDiff: 2,
		ShortLabelMaxDistance:     1,
		MediumLabelMaxDistance:    2,
		LongLabelMaxDistance:      3,
		MaxHomographSubstitutions: 3,
		MaxTrailingLetters:        4,
		MinBaseLength:             3,
	}
}

// Validate reports the first out-of-range value
func (t Thresholds) Validate() error {
	ratios := map[string]float64{
		"similarity_gate":        t.SimilarityGate,
		"substitution_min_ratio": t.SubstitutionMinRatio,
	}
	for name, v := range ratios {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, v)
		}
	}

	counts := map[string]int{
		"substitution_max_length_diff": t.SubstitutionMaxLengthDiff,
		"short_label_max_distance":     t.ShortLabelMaxDistance,
		"medium_label_max_distance":    t.MediumLabelMaxDistance,
		"long_label_max_distance":      t.LongLabelMaxDistance,
		"max_homograph_substitutions":  t.MaxHomographSubstitutions,
		"max_trailing_letters":         t.MaxTrailingLetters,
		"min_base_length":              t.MinBaseLength,
	}
	for name, v := range counts {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

// maxEditDistance scales the allowed edit distance with label length
func (t Thresholds) maxEditDistance(labelLen int) int {
	switch {
	case labelLen <= 10:
		return t.ShortLabelMaxDistance
	case labelLen <= 15:
		return t.MediumLabelMaxDistance
	default:
		return t.LongLabelMaxDistance
	}
}
