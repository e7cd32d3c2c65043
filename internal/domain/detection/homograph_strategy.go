package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

// HomographStrategy detects look-alike character swaps (g00gle, раypal)
type HomographStrategy struct{}

// NewHomographStrategy creates a new homograph attack strategy
func NewHomographStrategy() *HomographStrategy {
	return &HomographStrategy{}
}

// Name returns the strategy name
func (s *HomographStrategy) Name() string {
	return "Homograph Attack"
}

// Detect requires equal-length labels that differ only by confusable swaps
func (s *HomographStrategy) Detect(pair Comparison, th Thresholds) *domain.SpoofingMatch {
	swaps := homographSwapList(pair.SafeBase(), pair.CandidateBase(), th)
	if len(swaps) == 0 {
		return nil
	}

	return pair.match(domain.AttackHomograph, fmt.Sprintf(
		"%s 以外觀相似的字元冒充 %s（%s）",
		pair.CandidateBase(), pair.SafeBase(), strings.Join(swaps, "、"),
	))
}

// homographSwaps counts the look-alike swaps turning safe into candidate, or
// returns 0 when the labels are not a homograph pair
func homographSwaps(safe, candidate string, th Thresholds) int {
	return len(homographSwapList(safe, candidate, th))
}

func homographSwapList(safe, candidate string, th Thresholds) []string {
	s, c := []rune(safe), []rune(candidate)
	if len(s) != len(c) || len(s) == 0 {
		return nil
	}

	var swaps []string
	for i := range s {
		if s[i] == c[i] {
			continue
		}
		if !isConfusable(s[i], c[i]) {
			return nil
		}
		swaps = append(swaps, fmt.Sprintf("%c→%c", s[i], c[i]))
		if len(swaps) > th.MaxHomographSubstitutions {
			return nil
		}
	}
	return swaps
}
