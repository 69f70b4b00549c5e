// Package config loads the caselaw configuration: JSON file under
// .caselaw/, environment overrides, and a .env file for the API token.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TokenEnvVar names the environment variable carrying the upstream API
// token. Absence of a token is valid; it degrades to the unauthenticated
// rate ceiling.
const TokenEnvVar = "COURTLISTENER_API_TOKEN"

// Config represents the complete caselaw configuration
type Config struct {
	Version  int            `json:"version" mapstructure:"version"`
	Upstream UpstreamConfig `json:"upstream" mapstructure:"upstream"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// UpstreamConfig configures the case-law API client
type UpstreamConfig struct {
	BaseURL           string  `json:"baseUrl" mapstructure:"baseUrl"`
	TimeoutSeconds    int     `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	RequestsPerSecond float64 `json:"requestsPerSecond" mapstructure:"requestsPerSecond"`
	Burst             int     `json:"burst" mapstructure:"burst"`
	RetryAttempts     int     `json:"retryAttempts" mapstructure:"retryAttempts"`
	RetryDelayMs      int     `json:"retryDelayMs" mapstructure:"retryDelayMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Upstream: UpstreamConfig{
			BaseURL:           "https://www.courtlistener.com/api/rest/v4",
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
			Burst:             4,
			RetryAttempts:     1,
			RetryDelayMs:      500,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Load reads configuration from <root>/.caselaw/config.json, falling
// back to defaults when no file exists. A .env file in the root is
// loaded first so the token can live outside the config file.
func Load(root string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("upstream.baseUrl", defaults.Upstream.BaseURL)
	v.SetDefault("upstream.timeoutSeconds", defaults.Upstream.TimeoutSeconds)
	v.SetDefault("upstream.requestsPerSecond", defaults.Upstream.RequestsPerSecond)
	v.SetDefault("upstream.burst", defaults.Upstream.Burst)
	v.SetDefault("upstream.retryAttempts", defaults.Upstream.RetryAttempts)
	v.SetDefault("upstream.retryDelayMs", defaults.Upstream.RetryDelayMs)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".caselaw"))

	v.SetEnvPrefix("CASELAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Token returns the upstream API token from the environment, empty when
// unset.
func Token() string {
	return strings.TrimSpace(os.Getenv(TokenEnvVar))
}

// Save writes the configuration to <root>/.caselaw/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".caselaw")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
