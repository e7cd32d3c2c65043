package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

// InsertionStrategy detects hyphens, digits or short letter runs inserted
// into or around a brand name (goo-gle, my-google, g-oogle24)
type InsertionStrategy struct{}

// NewInsertionStrategy creates a new character insertion strategy
func NewInsertionStrategy() *InsertionStrategy {
	return &InsertionStrategy{}
}

// Name returns the strategy name
func (s *InsertionStrategy) Name() string {
	return "Character Insertion"
}

// Detect uses containment and digit stripping rather than edit distance,
// since insertions often exceed the substitution budget
func (s *InsertionStrategy) Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch {
	candidate, safe := pair.CandidateBase(), pair.SafeBase()
	if candidate == safe || safe == "" {
		return nil
	}

	if stripDigitsAndHyphens(candidate) == safe {
		return pair.match(domain.AttackCharacterInsertion, fmt.Sprintf(
			"%s 是在 %s 中插入連字號或數字", candidate, safe,
		))
	}

	var extra string
	switch {
	case strings.HasPrefix(candidate, safe):
		extra = strings.TrimPrefix(candidate, safe)
	case strings.HasSuffix(candidate, safe):
		extra = strings.TrimSuffix(candidate, safe)
	default:
		return nil
	}

	letters := stripDigitsAndHyphens(extra)
	if n := len([]rune(letters)); n >= 1 && n <= th.MaxTrailingLetters && isLetters(letters) {
		return pair.match(domain.AttackCharacterInsertion, fmt.Sprintf(
			"%s 是在 %s 前後加上「%s」", candidate, safe, extra,
		))
	}
	return nil
}
