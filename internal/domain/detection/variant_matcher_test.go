package detection

import (
	"testing"

	"github.com/stoik/spoofguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateFor(t *testing.T, text string) domain.CandidateDomain {
	t.Helper()
	candidates := ExtractCandidates(text)
	require.Len(t, candidates, 1)
	return candidates[0]
}

func TestMatchKnownVariants(t *testing.T) {
	chtOnly := map[string]string{"cht.com.tw": "中華電信"}
	chtFamily := map[string]string{
		"cht.com.tw": "中華電信",
		"cht.com":    "中華電信國際",
		"cht.net":    "中華電信網路",
		"cht.org":    "中華電信基金會",
	}

	tests := []struct {
		name               string
		text               string
		safeDomains        map[string]string
		expectSafe         bool
		expectedCollisions int
	}{
		{"Exact match", "cht.com.tw", chtOnly, true, 0},
		{"Exact match with www", "www.cht.com.tw", chtOnly, true, 0},
		{"Subdomain of safe domain", "https://mail.google.com", map[string]string{"google.com": "Google"}, true, 0},
		{"Legitimate short variant", "cht.tw", chtOnly, true, 0},
		{"Legitimate variant wins over other collisions", "cht.net", map[string]string{"cht.com.tw": "a", "cht.com": "b"}, true, 0},
		{"Base collision", "cht.net", chtOnly, false, 1},
		{"Collides with every entry", "cht.xyz", chtFamily, false, 4},
		{"Unrelated base", "example.com", chtOnly, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := matchKnownVariants(candidateFor(t, tt.text), NewRegistry(tt.safeDomains))

			assert.Equal(t, tt.expectSafe, out.safe)
			assert.Len(t, out.collisions, tt.expectedCollisions)
			for _, c := range out.collisions {
				assert.Equal(t, domain.AttackBaseDomainCollision, c.AttackKind)
				assert.True(t, out.resolved[c.MatchedSafeDomain])
			}
		})
	}
}

func TestIsLegitimateVariant(t *testing.T) {
	assert.True(t, isLegitimateVariant(".tw", ".com.tw"))
	assert.True(t, isLegitimateVariant(".com.tw", ".tw"))
	assert.True(t, isLegitimateVariant(".net", ".com"))
	assert.True(t, isLegitimateVariant(".org", ".com"))
	assert.False(t, isLegitimateVariant(".net", ".com.tw"))
	assert.False(t, isLegitimateVariant(".net", ".org"))
}

func TestCheckGovernmentDomain(t *testing.T) {
	tests := []struct {
		name        string
		host        string
		expected    governmentVerdict
		highWording bool
	}{
		{"Real government site", "moi.gov.tw", governmentLegitimate, false},
		{"Government root", "gov.tw", governmentLegitimate, false},
		{"Hyphenated gov on .com", "abc-gov.com", governmentImpersonation, true},
		{"govtw glued", "govtw-service.com", governmentImpersonation, true},
		{"gov.tw used as subdomain", "gov.tw.example.com", governmentImpersonation, true},
		{"gov on unusual TLD", "mygov.xyz", governmentImpersonation, false},
		{"govtech is incidental", "mygovtech.com", governmentNotApplicable, false},
		{"government is incidental", "government.com", governmentNotApplicable, false},
		{"No gov at all", "google.com", governmentNotApplicable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, match := checkGovernmentDomain(tt.host, "https://"+tt.host)
			assert.Equal(t, tt.expected, verdict)

			if tt.expected != governmentImpersonation {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, domain.AttackGovernmentImpersonation, match.AttackKind)
			assert.Equal(t, "gov.tw", match.MatchedSafeDomain)
			if tt.highWording {
				assert.Contains(t, match.ConfidenceNote, "常見假冒政府網站格式")
			} else {
				assert.Contains(t, match.ConfidenceNote, "不是 .gov.tw 結尾")
			}
		})
	}
}

func TestCheckGovernmentDomain_PathPattern(t *testing.T) {
	verdict, match := checkGovernmentDomain("mygov.xyz", "https://mygov.xyz.com/tw")
	assert.Equal(t, governmentImpersonation, verdict)
	require.NotNil(t, match)
	assert.Contains(t, match.ConfidenceNote, "常見假冒政府網站格式")
}
