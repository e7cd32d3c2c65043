package detection

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// levenshteinDistance calculates the rune-level edit distance between two labels
func levenshteinDistance(s1, s2 string) int {
	return levenshtein.ComputeDistance(s1, s2)
}

// lcsLength returns the longest common subsequence length of a and b, where
// eq decides whether two runes match
func lcsLength(a, b []rune, eq func(x, y rune) bool) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Two rolling rows of the classic DP table
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if eq(a[i-1], b[j-1]) {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func exactRune(x, y rune) bool { return x == y }

// lookAlikeRune treats a known confusable swap as a match. x is the safe rune.
func lookAlikeRune(x, y rune) bool { return x == y || isConfusable(x, y) }

// similarityRatio is LCS length over the longer label
func similarityRatio(a, b string) float64 {
	return lcsRatio([]rune(a), []rune(b), exactRune)
}

// lookAlikeRatio is similarityRatio with confusable swaps counted as matches
func lookAlikeRatio(safe, candidate string) float64 {
	return lcsRatio([]rune(safe), []rune(candidate), lookAlikeRune)
}

func lcsRatio(a, b []rune, eq func(x, y rune) bool) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return float64(lcsLength(a, b, eq)) / float64(longest)
}

// hasSufficientSimilarity gates the costly strategies
func hasSufficientSimilarity(safe, candidate string, th Thresholds) bool {
	return lookAlikeRatio(safe, candidate) >= th.SimilarityGate
}

// stripDigits removes ASCII digits
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// stripDigitsAndHyphens removes ASCII digits and hyphens
func stripDigitsAndHyphens(s string) string {
	return strings.ReplaceAll(stripDigits(s), "-", "")
}

// containsDigit reports whether s has an ASCII digit
func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// isLetters reports whether s is a non-empty run of letters
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// splitDomain returns the base label and suffix chain of a host, skipping a
// leading "www" label
func splitDomain(host string) (string, []string) {
	host = stripWWW(host)
	labels := strings.Split(host, ".")
	return labels[0], labels[1:]
}

// stripWWW removes a single leading "www." prefix
func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// joinSuffix renders a suffix chain as ".com.tw"
func joinSuffix(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return "." + strings.Join(chain, ".")
}

// containsAny checks if text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
