package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttackKind classifies how a candidate domain imitates a safe domain
type AttackKind string

const (
	AttackSuffixInsertion         AttackKind = "SUFFIX_INSERTION"
	AttackCharacterSubstitution   AttackKind = "CHARACTER_SUBSTITUTION"
	AttackCharacterInsertion      AttackKind = "CHARACTER_INSERTION"
	AttackHomograph               AttackKind = "HOMOGRAPH"
	AttackBaseDomainCollision     AttackKind = "BASE_DOMAIN_COLLISION"
	AttackGovernmentImpersonation AttackKind = "GOVERNMENT_IMPERSONATION"
)

// MultipleMatches is the matched safe domain reported when a verdict carries
// more than one match
const MultipleMatches = "multiple"

// SafeDomainEntry is one curated known-good domain
//
// Domain keeps the configured spelling (lowercased). BaseLabel and SuffixChain
// are derived once when the registry is built, skipping a leading "www" label.
type SafeDomainEntry struct {
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	BaseLabel   string   `json:"-"`
	SuffixChain []string `json:"-"`
}

// CandidateDomain is a URL-like span extracted from user text
type CandidateDomain struct {
	RawURL           string   `json:"raw_url"`
	NormalizedDomain string   `json:"normalized_domain"` // lowercased host, "www." kept
	BaseLabel        string   `json:"base_label"`        // first label after stripping "www."
	SuffixChain      []string `json:"suffix_chain"`      // remaining labels, e.g. ["com", "tw"]
}

// SpoofingMatch is a single detector hit against one safe domain
type SpoofingMatch struct {
	MatchedSafeDomain string     `json:"matched_safe_domain"`
	Description       string     `json:"description"`
	AttackKind        AttackKind `json:"attack_kind"`
	ConfidenceNote    string     `json:"confidence_note"`
}

// SpoofingVerdict is the engine's answer for one piece of text
//
// Invariant: IsSpoofed == false implies Matches is empty.
type SpoofingVerdict struct {
	IsSpoofed         bool            `json:"is_spoofed"`
	SpoofedDomain     string          `json:"spoofed_domain,omitempty"`
	MatchedSafeDomain string          `json:"matched_safe_domain,omitempty"` // MultipleMatches when len(Matches) > 1
	Description       string          `json:"description,omitempty"`
	AttackKind        AttackKind      `json:"attack_kind,omitempty"`
	Matches           []SpoofingMatch `json:"matches"`
	RiskExplanation   string          `json:"risk_explanation,omitempty"`
}

// ScanRecord is the audit row written for every checked message
//
// Simplification: we keep only a truncated excerpt of the checked text. Chat
// messages can hold personal data and the excerpt is enough to review a verdict.
type ScanRecord struct {
	ID                uuid.UUID       `json:"id"`
	Source            string          `json:"source"` // e.g. "line", "cli", "api"
	TextExcerpt       string          `json:"text_excerpt"`
	IsSpoofed         bool            `json:"is_spoofed"`
	SpoofedDomain     string          `json:"spoofed_domain,omitempty"`
	MatchedSafeDomain string          `json:"matched_safe_domain,omitempty"`
	AttackKind        AttackKind      `json:"attack_kind,omitempty"`
	Matches           []SpoofingMatch `json:"matches"`
	RiskExplanation   string          `json:"risk_explanation,omitempty"`
	ScannedAt         time.Time       `json:"scanned_at"`
}

// MaxExcerptRunes bounds ScanRecord.TextExcerpt
const MaxExcerptRunes = 200

// NewScanRecord builds an audit row for a verdict
func NewScanRecord(source, text string, verdict SpoofingVerdict, scannedAt time.Time) *ScanRecord {
	matches := verdict.Matches
	if matches == nil {
		matches = []SpoofingMatch{}
	}
	return &ScanRecord{
		ID:                uuid.New(),
		Source:            source,
		TextExcerpt:       Excerpt(text, MaxExcerptRunes),
		IsSpoofed:         verdict.IsSpoofed,
		SpoofedDomain:     verdict.SpoofedDomain,
		MatchedSafeDomain: verdict.MatchedSafeDomain,
		AttackKind:        verdict.AttackKind,
		Matches:           matches,
		RiskExplanation:   verdict.RiskExplanation,
		ScannedAt:         scannedAt,
	}
}

// Excerpt truncates text to at most n runes
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
