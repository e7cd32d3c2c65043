package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stoik/spoofguard/internal/domain/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "DATABASE_URL", "SAFE_DOMAINS_PATH", "THRESHOLDS_PATH", "READ_TIMEOUT", "WRITE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeoutDuration())
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "config/safe_domains.json", cfg.Registry.SafeDomainsPath)
	assert.Equal(t, detection.DefaultThresholds(), cfg.Thresholds)
}

func TestLoad_FromEnvironment(t *testing.T) {
	thresholds := writeFile(t, "thresholds.yaml", "similarity_gate: 0.85\n")

	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/spoofguard")
	t.Setenv("SAFE_DOMAINS_PATH", "/etc/spoofguard/domains.json")
	t.Setenv("THRESHOLDS_PATH", thresholds)
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("WRITE_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "unparsable values fall back to the default")
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeoutDuration())
	assert.Equal(t, "postgres://localhost/spoofguard", cfg.Database.URL)
	assert.Equal(t, "/etc/spoofguard/domains.json", cfg.Registry.SafeDomainsPath)
	assert.Equal(t, 0.85, cfg.Thresholds.SimilarityGate)
}

func TestLoad_InvalidThresholds(t *testing.T) {
	t.Setenv("THRESHOLDS_PATH", writeFile(t, "thresholds.yaml", "similarity_gate: 1.5\n"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity_gate")
}

func TestLoadThresholds(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected func(th *detection.Thresholds)
		errMsg   string
	}{
		{
			name:     "Empty file keeps defaults",
			content:  "",
			expected: func(th *detection.Thresholds) {},
		},
		{
			name: "Partial override",
			content: "max_trailing_letters: 2\n" +
				"min_base_length: 4\n" +
				"long_label_max_distance: 4\n",
			expected: func(th *detection.Thresholds) {
				th.MaxTrailingLetters = 2
				th.MinBaseLength = 4
				th.LongLabelMaxDistance = 4
			},
		},
		{
			name:    "Negative count",
			content: "max_homograph_substitutions: -1\n",
			errMsg:  "max_homograph_substitutions must not be negative",
		},
		{
			name:    "Zero ratio",
			content: "substitution_min_ratio: 0\n",
			errMsg:  "substitution_min_ratio must be in (0, 1]",
		},
		{
			name:    "Malformed yaml",
			content: "similarity_gate: [",
			errMsg:  "error parsing thresholds file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := LoadThresholds(writeFile(t, "thresholds.yaml", tt.content))

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			want := detection.DefaultThresholds()
			tt.expected(&want)
			assert.Equal(t, want, th)
		})
	}
}

func TestLoadThresholds_MissingFile(t *testing.T) {
	_, err := LoadThresholds(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
