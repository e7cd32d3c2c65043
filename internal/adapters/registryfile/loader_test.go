package registryfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		document   string
		expected   map[string]string
		categories []string
	}{
		{
			name: "Categories are flattened",
			document: `{
				"safe_domains": {
					"government": {"moi.gov.tw": "內政部"},
					"telecom": {"cht.com.tw": "中華電信", "www.fetnet.net": "遠傳電信"}
				}
			}`,
			expected: map[string]string{
				"moi.gov.tw":     "內政部",
				"cht.com.tw":     "中華電信",
				"www.fetnet.net": "遠傳電信",
			},
			categories: []string{"government", "telecom"},
		},
		{
			name: "Flat donation domains are merged",
			document: `{
				"safe_domains": {"search": {"google.com": "Google"}},
				"donation_domains": {"genesis.org.tw": "創世基金會"}
			}`,
			expected: map[string]string{
				"google.com":     "Google",
				"genesis.org.tw": "創世基金會",
			},
			categories: []string{"search"},
		},
		{
			name: "Grouped donation domains are merged",
			document: `{
				"safe_domains": {},
				"donation_domains": {"charity": {"worldvision.org.tw": "台灣世界展望會"}}
			}`,
			expected: map[string]string{
				"worldvision.org.tw": "台灣世界展望會",
			},
		},
		{
			name: "Keys are lowercased and the first category wins",
			document: `{
				"safe_domains": {
					"a": {"Google.COM": "first"},
					"b": {"google.com": "second"}
				},
				"donation_domains": {"google.com": "third"}
			}`,
			expected:   map[string]string{"google.com": "first"},
			categories: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Parse(strings.NewReader(tt.document))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reg.Domains)
			assert.Equal(t, tt.categories, reg.Categories)
			assert.Equal(t, len(tt.expected), reg.Len())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		expectedErr error
		contains    string
	}{
		{
			name:        "Blank safe domain key",
			document:    `{"safe_domains": {"bank": {"  ": "nothing"}}}`,
			expectedErr: ErrEmptyDomain,
			contains:    `category "bank"`,
		},
		{
			name:        "Blank donation key",
			document:    `{"donation_domains": {"": "nothing"}}`,
			expectedErr: ErrEmptyDomain,
		},
		{
			name:     "Malformed json",
			document: `{"safe_domains": [`,
			contains: "invalid registry json",
		},
		{
			name:     "Donation entry of the wrong type",
			document: `{"donation_domains": {"charity": 42}}`,
			contains: "donation_domains.charity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.document))
			require.Error(t, err)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe_domains.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"safe_domains": {"social": {"line.me": "LINE"}}}`), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"line.me": "LINE"}, reg.Domains)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
