package detection

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stoik/spoofguard/internal/domain"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/unicode/norm"
)

// spanStop ends a scheme or "www." span. Full-width punctuation is listed in
// both forms since NFKC folds "，" to ",".
const spanStop = `\s<>"'，。！？；：、「」『』（）【】,!;`

// hostLabel is one label of a bare host. Han, Kana and Hangul stay out so a
// link glued to Chinese text ("請到google.com") starts at the host.
const hostLabel = `[\p{Latin}\p{Greek}\p{Cyrillic}\p{Armenian}0-9]` +
	`(?:[\p{Latin}\p{Greek}\p{Cyrillic}\p{Armenian}0-9\-]*[\p{Latin}\p{Greek}\p{Cyrillic}\p{Armenian}0-9])?`

// urlSpanPattern finds URL-like spans in free text: "scheme://...", "www...."
// or a bare "label.tld[/path]" whose TLD is ASCII
var urlSpanPattern = regexp.MustCompile(
	`(?i)` +
		`[a-z][a-z0-9+.\-]*://[^` + spanStop + `]+` +
		`|www\.[^` + spanStop + `]+` +
		`|` + hostLabel + `(?:\.` + hostLabel + `)*\.[a-z]{2,}(?:/[^` + spanStop + `]*)?`,
)

// trailingPunctuation is trimmed from the end of a span
const trailingPunctuation = "，。！？；：、.,!?;:)]}'\"…"

// ExtractCandidates pulls candidate domains out of arbitrary text
//
// Spans are returned in text order, de-duplicated by raw span. Spans whose
// host cannot be parsed are silently dropped, so the result may be empty.
func ExtractCandidates(text string) []domain.CandidateDomain {
	// NFKC folds full-width letters ("ｇｏｏｇｌｅ") to ASCII like a browser would
	text = norm.NFKC.String(text)

	seen := make(map[string]bool)
	candidates := make([]domain.CandidateDomain, 0)

	for _, span := range urlSpanPattern.FindAllString(text, -1) {
		span = trimTrailingText(strings.TrimRight(span, trailingPunctuation))
		if span == "" || seen[span] {
			continue
		}
		seen[span] = true

		candidate, ok := parseCandidate(span)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates
}

// parseCandidate turns a raw span into a CandidateDomain
func parseCandidate(raw string) (domain.CandidateDomain, bool) {
	hasScheme := strings.Contains(raw, "://")
	target := raw
	if !hasScheme {
		target = "https://" + raw
	}

	// Only scheme and authority matter; a broken escape in the path must not
	// cost us the host
	scheme, rest, _ := strings.Cut(target, "://")
	if i := strings.IndexAny(rest, "/?#\\"); i != -1 {
		rest = rest[:i]
	}

	u, err := url.Parse(scheme + "://" + rest)
	if err != nil {
		return domain.CandidateDomain{}, false
	}

	host, ok := normalizeHost(u.Hostname())
	if !ok {
		return domain.CandidateDomain{}, false
	}

	// Bare spans such as "node.js" or "main.py" are not links
	if !hasScheme && !strings.HasPrefix(host, "www.") && !hasICANNTopLevel(host) {
		return domain.CandidateDomain{}, false
	}

	base, suffix := splitDomain(host)
	if base == "" || len(suffix) == 0 {
		return domain.CandidateDomain{}, false
	}

	return domain.CandidateDomain{
		RawURL:           raw,
		NormalizedDomain: host,
		BaseLabel:        base,
		SuffixChain:      suffix,
	}, true
}

// trimTrailingText cuts a span where its authority runs into text that cannot
// belong to a host, e.g. the "登入" in "www.google.com登入"
func trimTrailingText(span string) string {
	start := 0
	if i := strings.Index(span, "://"); i != -1 {
		start = i + len("://")
	}

	for i, r := range span[start:] {
		if strings.ContainsRune("/?#\\", r) {
			return span
		}
		if !isAuthorityRune(r) {
			return strings.TrimRight(span[:start+i], trailingPunctuation)
		}
	}
	return span
}

// isAuthorityRune reports whether r may appear in userinfo, host or port
func isAuthorityRune(r rune) bool {
	if r < utf8.RuneSelf {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' ||
			strings.ContainsRune("-._~%@:[]", r)
	}
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul, unicode.Bopomofo) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// normalizeHost lowercases a host and validates it as a domain name
//
// IP literals and dotless hosts are rejected. Punycode labels are decoded so
// Cyrillic or Greek look-alikes reach the homograph strategy as Unicode.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	if host == "" || net.ParseIP(host) != nil {
		return "", false
	}

	if isASCII(host) && !strings.Contains(host, "xn--") {
		host = strings.ToLower(host)
	} else {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return "", false
		}
		unicodeHost, err := idna.Lookup.ToUnicode(ascii)
		if err != nil {
			return "", false
		}
		host = strings.ToLower(unicodeHost)
	}

	if !strings.Contains(host, ".") || strings.Contains(host, "..") {
		return "", false
	}
	return host, true
}

// hasICANNTopLevel reports whether the last label is an ICANN-managed TLD
func hasICANNTopLevel(host string) bool {
	tld := host[strings.LastIndexByte(host, '.')+1:]
	_, icann := publicsuffix.PublicSuffix(tld)
	return icann
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
