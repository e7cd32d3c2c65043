package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/stoik/spoofguard/internal/domain/detection"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Registry   RegistryConfig
	Thresholds detection.Thresholds
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// DatabaseConfig holds database configuration
// An empty URL selects the in-memory scan store.
type DatabaseConfig struct {
	URL string
}

// RegistryConfig locates the safe-domain document and threshold overrides
type RegistryConfig struct {
	SafeDomainsPath string
	ThresholdsPath  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Registry: RegistryConfig{
			SafeDomainsPath: getEnv("SAFE_DOMAINS_PATH", "config/safe_domains.json"),
			ThresholdsPath:  getEnv("THRESHOLDS_PATH", ""),
		},
		Thresholds: detection.DefaultThresholds(),
	}

	if cfg.Registry.ThresholdsPath != "" {
		th, err := LoadThresholds(cfg.Registry.ThresholdsPath)
		if err != nil {
			return nil, err
		}
		cfg.Thresholds = th
	}

	return cfg, nil
}

// LoadThresholds reads a YAML threshold file over the calibrated defaults
// Keys missing from the file keep their default value.
func LoadThresholds(path string) (detection.Thresholds, error) {
	th := detection.DefaultThresholds()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return th, fmt.Errorf("error reading thresholds file: %w", err)
	}

	if err := yaml.Unmarshal(data, &th); err != nil {
		return th, fmt.Errorf("error parsing thresholds file: %w", err)
	}

	if err := th.Validate(); err != nil {
		return th, fmt.Errorf("thresholds validation failed: %w", err)
	}

	return th, nil
}

// IsProduction reports whether the service runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
