package detection

// confusables maps a character of a safe label to the characters an attacker
// swaps in for it. Covers ASCII digits/symbols and Cyrillic/Greek look-alikes.
var confusables = map[rune][]rune{
	'a': {'а', 'α', '@', '4'},
	'b': {'ь', 'в', '6'},
	'c': {'с', 'ϲ'},
	'd': {'ԁ'},
	'e': {'е', 'ε', '3'},
	'g': {'9', 'ɡ', 'q'},
	'h': {'һ'},
	'i': {'1', 'l', 'і', 'ι', '!'},
	'j': {'ј'},
	'k': {'κ'},
	'l': {'1', 'i', 'ӏ', '|'},
	'm': {'м'},
	'n': {'η', 'п'},
	'o': {'0', 'о', 'ο'},
	'p': {'р', 'ρ'},
	'q': {'ԛ', '9'},
	's': {'$', '5', 'ѕ'},
	't': {'7', 'τ'},
	'u': {'υ', 'ս'},
	'v': {'ν'},
	'w': {'ѡ', 'ω'},
	'x': {'х', 'χ'},
	'y': {'у', 'γ'},
	'z': {'2'},
	'0': {'o', 'о'},
	'1': {'l', 'i'},
	'5': {'s'},
}

// isConfusable reports whether replacing safe with candidate is a known look-alike swap
func isConfusable(safe, candidate rune) bool {
	for _, r := range confusables[safe] {
		if r == candidate {
			return true
		}
	}
	return false
}
