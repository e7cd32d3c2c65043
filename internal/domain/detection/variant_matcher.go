package detection

import (
	"fmt"

	"github.com/stoik/spoofguard/internal/domain"
)

// legitimateSuffixPairs are suffix swaps that stay within one organization,
// e.g. cht.tw next to cht.com.tw. Lookup is bidirectional.
var legitimateSuffixPairs = map[[2]string]bool{
	{".tw", ".com.tw"}: true,
	{".tw", ".org.tw"}: true,
	{".tw", ".net.tw"}: true,
	{".com", ".net"}:   true,
	{".com", ".org"}:   true,
}

func isLegitimateVariant(a, b string) bool {
	return legitimateSuffixPairs[[2]string{a, b}] || legitimateSuffixPairs[[2]string{b, a}]
}

// matchOutcome is the result of the exact and legitimate-variant pass
type matchOutcome struct {
	// safe is set when the candidate is whitelisted or a legitimate variant
	safe bool

	// collisions are same-base, different-suffix impersonations
	collisions []domain.SpoofingMatch

	// resolved holds the registry domains already decided by this pass
	resolved map[string]bool
}

// matchKnownVariants resolves the cheap cases before any edit-distance work
//
// A legitimate variant against any entry marks the candidate safe, whatever
// collisions other entries produced. Collisions never stop the scan because
// several entries may share the base label.
func matchKnownVariants(candidate domain.CandidateDomain, registry *Registry) matchOutcome {
	out := matchOutcome{resolved: make(map[string]bool)}

	if _, ok := registry.LookupExact(candidate.NormalizedDomain); ok {
		out.safe = true
		return out
	}
	if _, ok := registry.LookupParent(candidate.NormalizedDomain); ok {
		out.safe = true
		return out
	}

	candidateSuffix := joinSuffix(candidate.SuffixChain)
	for _, entry := range registry.entries {
		if entry.BaseLabel != candidate.BaseLabel {
			continue
		}

		entrySuffix := joinSuffix(entry.SuffixChain)
		if isLegitimateVariant(candidateSuffix, entrySuffix) {
			out.safe = true
			out.collisions = nil
			return out
		}

		out.resolved[entry.Domain] = true
		out.collisions = append(out.collisions, domain.SpoofingMatch{
			MatchedSafeDomain: entry.Domain,
			Description:       entry.Description,
			AttackKind:        domain.AttackBaseDomainCollision,
			ConfidenceNote: fmt.Sprintf(
				"與 %s 使用相同名稱「%s」但網域後綴 %s 不同（正牌為 %s）",
				entry.Domain, entry.BaseLabel, candidateSuffix, entrySuffix,
			),
		})
	}

	return out
}
