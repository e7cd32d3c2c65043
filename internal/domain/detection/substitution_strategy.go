package detection

import (
	"fmt"

	"github.com/stoik/spoofguard/internal/domain"
)

// SubstitutionStrategy detects typos of a brand name within a small edit distance
type SubstitutionStrategy struct{}

// NewSubstitutionStrategy creates a new character substitution strategy
func NewSubstitutionStrategy() *SubstitutionStrategy {
	return &SubstitutionStrategy{}
}

// Name returns the strategy name
func (s *SubstitutionStrategy) Name() string {
	return "Character Substitution"
}

// Detect flags labels within a length-scaled edit distance of the safe label
//
// The LCS ratio requirement rejects short unrelated labels that happen to be
// one or two edits apart. Pure look-alike swaps are left to the homograph
// strategy so they are reported as such.
func (s *SubstitutionStrategy) Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch {
	candidate, safe := pair.CandidateBase(), pair.SafeBase()
	candidateLen, safeLen := len([]rune(candidate)), len([]rune(safe))

	if abs(candidateLen-safeLen) > th.SubstitutionMaxLengthDiff {
		return nil
	}
	if homographSwaps(safe, candidate, th) > 0 {
		return nil
	}

	distance := levenshteinDistance(candidate, safe)
	if distance == 0 || distance > th.maxEditDistance(max(candidateLen, safeLen)) {
		return nil
	}

	ratio := similarityRatio(candidate, safe)
	if ratio < th.SubstitutionMinRatio {
		return nil
	}

	return pair.match(domain.AttackCharacterSubstitution, fmt.Sprintf(
		"%s 與 %s 僅差 %d 個字元（相似度 %.0f%%）",
		candidate, safe, distance, ratio*100,
	))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
