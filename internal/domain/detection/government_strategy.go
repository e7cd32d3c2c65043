package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

const (
	governmentSuffix      = "gov.tw"
	governmentDescription = "中華民國政府機關網站"
)

// suspiciousGovernmentPatterns are layouts typical of fake government sites
var suspiciousGovernmentPatterns = []string{
	"-gov.com", "gov.com", "gov.net", "gov.org", ".com/tw", "-gov.net", "gov-", "govtw", "gov.tw.",
}

// incidentalGovernmentTokens contain "gov" without claiming to be a .gov.tw site
var incidentalGovernmentTokens = []string{"google", "govtech", "government"}

// governmentVerdict is the government heuristic outcome for one candidate
type governmentVerdict int

const (
	governmentNotApplicable governmentVerdict = iota
	governmentLegitimate
	governmentImpersonation
)

// checkGovernmentDomain classifies a candidate against the .gov.tw namespace
//
// host must have "www." stripped already. rawURL is only used to pick the
// wording, since some patterns (".com/tw") span the host and the path.
func checkGovernmentDomain(host, rawURL string) (governmentVerdict, *domain.SpoofingMatch) {
	host = strings.ToLower(host)
	if host == governmentSuffix || strings.HasSuffix(host, "."+governmentSuffix) {
		return governmentLegitimate, nil
	}

	residual := host
	for _, token := range incidentalGovernmentTokens {
		residual = strings.ReplaceAll(residual, token, "")
	}
	if !strings.Contains(residual, "gov") {
		return governmentNotApplicable, nil
	}

	note := fmt.Sprintf("網域 %s 含有「gov」但不是 .gov.tw 結尾，可能冒充政府機關", host)
	if containsAny(host, suspiciousGovernmentPatterns) || containsAny(strings.ToLower(rawURL), suspiciousGovernmentPatterns) {
		note = fmt.Sprintf("網域 %s 符合常見假冒政府網站格式，真正的政府網站一律以 .gov.tw 結尾", host)
	}

	return governmentImpersonation, &domain.SpoofingMatch{
		MatchedSafeDomain: governmentSuffix,
		Description:       governmentDescription,
		AttackKind:        domain.AttackGovernmentImpersonation,
		ConfidenceNote:    note,
	}
}
