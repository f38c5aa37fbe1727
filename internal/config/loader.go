package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads the configuration from file and environment
func (l *Loader) Load() (*Config, error) {
	// Determine config path
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".dzapprove", "dzapprove.json")
	}

	// Setup viper
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	// Read environment variables
	v.SetEnvPrefix("DZAPPROVE")
	v.AutomaticEnv()

	cfg := DefaultConfig()

	// Read config file if present; environment and defaults apply otherwise
	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Unmarshal into config struct
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Apply default data directory
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".dzapprove")
	}

	applyLegacyEnv(cfg)

	return cfg, nil
}

// FromEnv builds a configuration from defaults and environment variables
// only, with no file access. This is the Lambda path: the deployment sets
// DOMAIN_ID, PROJECT_ID and SNS_TOPIC_ARN on the function.
func FromEnv() *Config {
	cfg := DefaultConfig()
	applyLegacyEnv(cfg)
	return cfg
}

// applyLegacyEnv honors the environment variables the original Lambda
// deployment used. They take precedence over file values so an existing
// deployment keeps working unchanged.
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("DOMAIN_ID"); v != "" {
		cfg.Catalog.DomainID = v
	}
	if v := os.Getenv("PROJECT_ID"); v != "" {
		cfg.Catalog.ProjectID = v
	}
	if v := os.Getenv("SNS_TOPIC_ARN"); v != "" {
		cfg.Notify.TopicARN = v
	}
}

// GetConfigPath returns the resolved config file path
func (l *Loader) GetConfigPath() string {
	if l.configPath != "" {
		return l.configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dzapprove", "dzapprove.json")
}
