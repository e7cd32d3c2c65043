package detection

import (
	"sort"
	"strings"

	"github.com/stoik/spoofguard/internal/domain"
)

// Registry is the read-only safe domain allow-list
//
// Entries are keyed by their bare (non-"www.") form so both spellings resolve
// to the same entry. A Registry is never mutated after NewRegistry returns and
// is safe for concurrent readers.
type Registry struct {
	byDomain map[string]domain.SafeDomainEntry
	entries  []domain.SafeDomainEntry // sorted by bare domain
}

// NewRegistry builds a registry from a domain → description map
//
// Keys are case-insensitive. Blank keys are skipped; loaders are expected to
// reject them before this point. When both "www.x" and "x" are configured the
// lexically first key wins.
func NewRegistry(safeDomains map[string]string) *Registry {
	keys := make([]string, 0, len(safeDomains))
	for k := range safeDomains {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &Registry{byDomain: make(map[string]domain.SafeDomainEntry, len(keys))}
	for _, k := range keys {
		configured := normalizeRegistryKey(k)
		bare := stripWWW(configured)
		if bare == "" {
			continue
		}
		if _, dup := r.byDomain[bare]; dup {
			continue
		}

		base, suffix := splitDomain(bare)
		entry := domain.SafeDomainEntry{
			Domain:      configured,
			Description: safeDomains[k],
			BaseLabel:   base,
			SuffixChain: suffix,
		}
		r.byDomain[bare] = entry
		r.entries = append(r.entries, entry)
	}

	sort.Slice(r.entries, func(i, j int) bool {
		return stripWWW(r.entries[i].Domain) < stripWWW(r.entries[j].Domain)
	})
	return r
}

// LookupExact finds the entry for a domain in either its "www." or bare form
func (r *Registry) LookupExact(d string) (domain.SafeDomainEntry, bool) {
	entry, ok := r.byDomain[stripWWW(normalizeRegistryKey(d))]
	return entry, ok
}

// LookupParent finds the entry a host is a subdomain of, e.g. "mail.google.com"
// for "google.com"
func (r *Registry) LookupParent(host string) (domain.SafeDomainEntry, bool) {
	host = stripWWW(normalizeRegistryKey(host))
	for i := strings.IndexByte(host, '.'); i != -1; i = strings.IndexByte(host, '.') {
		host = host[i+1:]
		if !strings.Contains(host, ".") {
			break
		}
		if entry, ok := r.byDomain[host]; ok {
			return entry, true
		}
	}
	return domain.SafeDomainEntry{}, false
}

// Entries returns a copy of every entry in a stable order
func (r *Registry) Entries() []domain.SafeDomainEntry {
	entries := make([]domain.SafeDomainEntry, len(r.entries))
	for i, e := range r.entries {
		e.SuffixChain = append([]string(nil), e.SuffixChain...)
		entries[i] = e
	}
	return entries
}

// Len returns the number of distinct entries
func (r *Registry) Len() int {
	return len(r.entries)
}

func normalizeRegistryKey(d string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
}
