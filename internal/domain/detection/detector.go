package detection

import (
	"github.com/stoik/spoofguard/internal/domain"
)

// Detector decides whether text links to an imitation of a safe domain
//
// For each extracted candidate the Detector runs, in order:
//   - the exact and legitimate-variant matcher (may short-circuit as safe)
//   - the government heuristic (may short-circuit either way)
//   - the variant strategies against every unresolved registry entry
//
// The first candidate with any match decides the verdict. A Detector holds
// only read-only state and is safe for concurrent use.
type Detector struct {
	registry   *Registry
	strategies []VariantStrategy
	thresholds Thresholds
}

// Option configures a Detector
type Option func(*Detector)

// WithThresholds overrides the calibrated thresholds
func WithThresholds(th Thresholds) Option {
	return func(d *Detector) { d.thresholds = th }
}

// WithStrategies replaces the variant strategies, in priority order
func WithStrategies(strategies ...VariantStrategy) Option {
	return func(d *Detector) { d.strategies = strategies }
}

// NewDetector creates a detector over a safe domain → description map
func NewDetector(safeDomains map[string]string, opts ...Option) *Detector {
	return NewDetectorWithRegistry(NewRegistry(safeDomains), opts...)
}

// NewDetectorWithRegistry creates a detector over an existing registry
func NewDetectorWithRegistry(registry *Registry, opts ...Option) *Detector {
	d := &Detector{
		registry:   registry,
		strategies: defaultStrategies(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectDomainSpoofing checks text against safeDomains in one call
//
// Callers checking many messages should build a Detector once instead.
func DetectDomainSpoofing(text string, safeDomains map[string]string) domain.SpoofingVerdict {
	return NewDetector(safeDomains).Analyze(text)
}

// Registry returns the detector's safe domain registry
func (d *Detector) Registry() *Registry {
	return d.registry
}

// Analyze returns the verdict for the first spoofed link in text
func (d *Detector) Analyze(text string) domain.SpoofingVerdict {
	evaluated := make(map[string]bool)

	for _, candidate := range ExtractCandidates(text) {
		if evaluated[candidate.NormalizedDomain] {
			continue
		}
		evaluated[candidate.NormalizedDomain] = true

		if verdict := d.AnalyzeCandidate(candidate); verdict.IsSpoofed {
			return verdict
		}
	}

	return notSpoofed()
}

// AnalyzeCandidate returns the verdict for a single candidate
func (d *Detector) AnalyzeCandidate(candidate domain.CandidateDomain) domain.SpoofingVerdict {
	known := matchKnownVariants(candidate, d.registry)
	if known.safe {
		return notSpoofed()
	}

	switch gov, match := checkGovernmentDomain(stripWWW(candidate.NormalizedDomain), candidate.RawURL); gov {
	case governmentLegitimate:
		return notSpoofed()
	case governmentImpersonation:
		return buildVerdict(candidate, []domain.SpoofingMatch{*match})
	}

	matches := known.collisions
	for _, entry := range d.registry.entries {
		if known.resolved[entry.Domain] {
			continue
		}

		pair := Comparison{Candidate: candidate, Entry: entry}
		for _, strategy := range d.strategies {
			if m := strategy.Detect(pair, d.thresholds); m != nil {
				matches = append(matches, *m)
				break
			}
		}
	}

	return buildVerdict(candidate, matches)
}
