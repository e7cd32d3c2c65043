package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

// regionSuffixes are appended to a brand to fake a local site
var regionSuffixes = []string{"tw", "taiwan"}

// brandKeywords are words scammers bolt onto a brand name
var brandKeywords = []string{
	"search", "official", "secure", "login", "bank", "pay", "tw", "taiwan", "24h",
	"shop", "store", "online", "web", "site", "net", "app", "mobile",
}

// SuffixInsertionStrategy detects brand names extended with a suffix or prefix
// (line-tw, google-search, pchome24h, secure-paypal)
type SuffixInsertionStrategy struct{}

// NewSuffixInsertionStrategy creates a new suffix/prefix insertion strategy
func NewSuffixInsertionStrategy() *SuffixInsertionStrategy {
	return &SuffixInsertionStrategy{}
}

// Name returns the strategy name
func (s *SuffixInsertionStrategy) Name() string {
	return "Suffix Insertion"
}

// Detect checks the base label first, then every later label of the
// candidate so that event.brand-tw.com is caught too
func (s *SuffixInsertionStrategy) Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch {
	safe := pair.SafeBase()
	if safe == "" {
		return nil
	}

	labels := append([]string{pair.CandidateBase()}, pair.Candidate.SuffixChain...)
	for _, label := range labels {
		if label == safe {
			continue
		}
		if kind, note, ok := s.checkLabel(label, safe, th); ok {
			return pair.match(kind, note)
		}
	}
	return nil
}

func (s *SuffixInsertionStrategy) checkLabel(label, safe string, th Thresholds) (domain.AttackKind, string, bool) {
	// -tw and -taiwan are malicious whatever the base length
	for _, region := range regionSuffixes {
		if label == safe+"-"+region {
			return domain.AttackSuffixInsertion,
				fmt.Sprintf("在品牌名稱 %s 後加上「-%s」偽裝成台灣官方網站", safe, region), true
		}
	}

	if len([]rune(safe)) < th.MinBaseLength {
		return "", "", false
	}

	for _, keyword := range brandKeywords {
		if label == safe+keyword || label == safe+"-"+keyword {
			return domain.AttackSuffixInsertion,
				fmt.Sprintf("在品牌名稱 %s 後加上「%s」字樣", safe, keyword), true
		}
		if label == keyword+safe || label == keyword+"-"+safe {
			return domain.AttackSuffixInsertion,
				fmt.Sprintf("在品牌名稱 %s 前加上「%s」字樣", safe, keyword), true
		}
	}

	if containsDigit(label) && stripDigits(label) == safe {
		return domain.AttackSuffixInsertion,
			fmt.Sprintf("在品牌名稱 %s 中插入數字", safe), true
	}

	if trailing, ok := strings.CutPrefix(label, safe); ok {
		if n := len([]rune(trailing)); n >= 1 && n <= th.MaxTrailingLetters && isLetters(trailing) {
			return domain.AttackSuffixInsertion,
				fmt.Sprintf("在品牌名稱 %s 後多加了字母「%s」", safe, trailing), true
		}
	}

	return "", "", false
}
