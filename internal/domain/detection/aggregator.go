package detection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

// maxListedMatches caps the safe domains named in a multi-match explanation
const maxListedMatches = 3

// attackSeverity orders matches inside a verdict, most severe first
var attackSeverity = map[domain.AttackKind]int{
	domain.AttackGovernmentImpersonation: 0,
	domain.AttackBaseDomainCollision:     1,
	domain.AttackSuffixInsertion:         2,
	domain.AttackHomograph:               3,
	domain.AttackCharacterSubstitution:   4,
	domain.AttackCharacterInsertion:      5,
}

var attackLabels = map[domain.AttackKind]string{
	domain.AttackGovernmentImpersonation: "冒充政府機關網域",
	domain.AttackBaseDomainCollision:     "相同名稱但不同網域後綴",
	domain.AttackSuffixInsertion:         "在品牌名稱加上額外字樣",
	domain.AttackHomograph:               "使用外觀相似的字元",
	domain.AttackCharacterSubstitution:   "替換品牌名稱中的字元",
	domain.AttackCharacterInsertion:      "在品牌名稱中插入字元",
}

// AttackLabel returns the user-facing wording for an attack kind
func AttackLabel(kind domain.AttackKind) string {
	if label, ok := attackLabels[kind]; ok {
		return label
	}
	return string(kind)
}

// buildVerdict deduplicates and ranks the matches for one candidate and renders
// the explanation
func buildVerdict(candidate domain.CandidateDomain, matches []domain.SpoofingMatch) domain.SpoofingVerdict {
	matches = dedupeMatches(matches)
	if len(matches) == 0 {
		return notSpoofed()
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return attackSeverity[matches[i].AttackKind] < attackSeverity[matches[j].AttackKind]
	})

	spoofed := candidate.NormalizedDomain
	primary := matches[0]

	if len(matches) == 1 {
		return domain.SpoofingVerdict{
			IsSpoofed:         true,
			SpoofedDomain:     spoofed,
			MatchedSafeDomain: primary.MatchedSafeDomain,
			Description:       primary.Description,
			AttackKind:        primary.AttackKind,
			Matches:           matches,
			RiskExplanation: fmt.Sprintf(
				"⚠️ 網域 %s 疑似仿冒 %s（%s）。手法：%s。%s",
				spoofed, primary.MatchedSafeDomain, primary.Description,
				AttackLabel(primary.AttackKind), primary.ConfidenceNote,
			),
		}
	}

	return domain.SpoofingVerdict{
		IsSpoofed:         true,
		SpoofedDomain:     spoofed,
		MatchedSafeDomain: domain.MultipleMatches,
		Description:       listMatches(matches),
		AttackKind:        primary.AttackKind,
		Matches:           matches,
		RiskExplanation: fmt.Sprintf(
			"⚠️ 網域 %s 同時與多個正牌網域相似，疑似仿冒：%s",
			spoofed, listMatches(matches),
		),
	}
}

// listMatches renders up to three "domain(description)" pairs
func listMatches(matches []domain.SpoofingMatch) string {
	n := min(len(matches), maxListedMatches)
	parts := make([]string, 0, n)
	for _, m := range matches[:n] {
		parts = append(parts, fmt.Sprintf("%s(%s)", m.MatchedSafeDomain, m.Description))
	}

	listed := strings.Join(parts, "、")
	if len(matches) > maxListedMatches {
		listed += fmt.Sprintf("...等共%d個相似網域", len(matches))
	}
	return listed
}

// dedupeMatches keeps the first match per safe domain
func dedupeMatches(matches []domain.SpoofingMatch) []domain.SpoofingMatch {
	seen := make(map[string]bool, len(matches))
	out := make([]domain.SpoofingMatch, 0, len(matches))
	for _, m := range matches {
		if seen[m.MatchedSafeDomain] {
			continue
		}
		seen[m.MatchedSafeDomain] = true
		out = append(out, m)
	}
	return out
}

func notSpoofed() domain.SpoofingVerdict {
	return domain.SpoofingVerdict{Matches: []domain.SpoofingMatch{}}
}
