package detection

import (
	"github.com/stoik/spoofguard/internal/domain"
)

// VariantStrategy defines the interface that every variant attack detector implements
//
// Strategies run in a fixed priority order for each (candidate, safe entry)
// pair; the first hit wins for that pair.
type VariantStrategy interface {
	// Detect returns a match if the candidate imitates the entry, nil otherwise
	Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch

	// Name returns the human-readable name of this strategy
	Name() string
}

// Comparison is one (candidate, safe entry) pair under evaluation
type Comparison struct {
	Candidate domain.CandidateDomain
	Entry     domain.SafeDomainEntry
}

// CandidateBase returns the candidate's base label
func (c Comparison) CandidateBase() string { return c.Candidate.BaseLabel }

// SafeBase returns the safe entry's base label
func (c Comparison) SafeBase() string { return c.Entry.BaseLabel }

func (c Comparison) match(kind domain.AttackKind, note string) *domain.SpoofingMatch {
	return &domain.SpoofingMatch{
		MatchedSafeDomain: c.Entry.Domain,
		Description:       c.Entry.Description,
		AttackKind:        kind,
		ConfidenceNote:    note,
	}
}

// similarityGate skips the wrapped strategy for pairs without a realistic
// resemblance, keeping edit-distance work off unrelated entries
type similarityGate struct {
	next VariantStrategy
}

// gated wraps a strategy behind the look-alike similarity pre-filter
func gated(s VariantStrategy) VariantStrategy {
	return &similarityGate{next: s}
}

func (g *similarityGate) Name() string {
	return g.next.Name()
}

func (g *similarityGate) Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch {
	if !hasSufficientSimilarity(pair.SafeBase(), pair.CandidateBase(), th) {
		return nil
	}
	return g.next.Detect(pair, th)
}

// defaultStrategies returns the strategies in priority order
func defaultStrategies() []VariantStrategy {
	return []VariantStrategy{
		NewSuffixInsertionStrategy(),
		gated(NewSubstitutionStrategy()),
		gated(NewInsertionStrategy()),
		gated(NewHomographStrategy()),
	}
}
