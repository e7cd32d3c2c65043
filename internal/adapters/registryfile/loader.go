package registryfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrEmptyDomain is returned when the document contains a blank domain key
var ErrEmptyDomain = errors.New("registry contains an empty domain")

// Document is the on-disk shape of the safe-domain registry
//
// safe_domains is grouped by category. donation_domains may be grouped the
// same way or be a flat domain → description map.
type Document struct {
	SafeDomains     map[string]map[string]string `json:"safe_domains"`
	DonationDomains map[string]json.RawMessage   `json:"donation_domains"`
}

// Registry is a flattened safe-domain document
type Registry struct {
	Domains    map[string]string // domain → description, categories merged
	Categories []string          // sorted category names found in safe_domains
}

// Len returns the number of distinct domains
func (r *Registry) Len() int {
	return len(r.Domains)
}

// Load reads and flattens a registry file
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading registry file: %w", err)
	}

	reg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing registry file %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a registry document and flattens it
//
// When the same domain appears in several categories the first occurrence in
// sorted category order wins.
func Parse(r io.Reader) (*Registry, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid registry json: %w", err)
	}

	reg := &Registry{Domains: make(map[string]string)}

	for _, category := range sortedKeys(doc.SafeDomains) {
		reg.Categories = append(reg.Categories, category)
		if err := mergeDomains(reg.Domains, doc.SafeDomains[category], category); err != nil {
			return nil, err
		}
	}

	donations, err := flattenDonations(doc.DonationDomains)
	if err != nil {
		return nil, err
	}
	if err := mergeDomains(reg.Domains, donations, "donation_domains"); err != nil {
		return nil, err
	}

	return reg, nil
}

func flattenDonations(raw map[string]json.RawMessage) (map[string]string, error) {
	out := make(map[string]string)
	for _, key := range sortedKeys(raw) {
		var description string
		if err := json.Unmarshal(raw[key], &description); err == nil {
			if _, exists := out[key]; !exists {
				out[key] = description
			}
			continue
		}

		var group map[string]string
		if err := json.Unmarshal(raw[key], &group); err != nil {
			return nil, fmt.Errorf("donation_domains.%s: expected a description or a domain map: %w", key, err)
		}
		for _, d := range sortedKeys(group) {
			if _, exists := out[d]; !exists {
				out[d] = group[d]
			}
		}
	}
	return out, nil
}

func mergeDomains(dst, src map[string]string, category string) error {
	for _, d := range sortedKeys(src) {
		key := strings.ToLower(strings.TrimSpace(d))
		if key == "" {
			return fmt.Errorf("category %q: %w", category, ErrEmptyDomain)
		}
		if _, exists := dst[key]; exists {
			continue
		}
		dst[key] = src[d]
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
