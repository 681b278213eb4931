// Package config holds the application's YAML configuration: where artifacts
// go, where the classification table lives, and how to reach the remote
// ledger backend.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level lifeos-finance.yaml configuration.
type Config struct {
	OutputDir          string       `yaml:"output_dir"`
	ClassificationFile string       `yaml:"classification_file,omitempty"`
	Remote             RemoteConfig `yaml:"remote"`
}

// RemoteConfig identifies the backend mutation endpoint. Credentials come
// from the environment when blank here, so the file can be committed.
type RemoteConfig struct {
	URL                 string `yaml:"url"`
	AdminKey            string `yaml:"admin_key,omitempty"`
	UserTokenIdentifier string `yaml:"user_token_identifier,omitempty"`
	MutationPath        string `yaml:"mutation_path,omitempty"`
}

// Environment variable fallbacks for RemoteConfig.
const (
	envRemoteURL = "CONVEX_URL"
	envAdminKey  = "CONVEX_ADMIN_KEY"
	envUserToken = "USER_TOKEN_IDENTIFIER"
)

// Load reads a config file from disk and applies environment fallbacks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	if cfg.OutputDir == "" {
		cfg.OutputDir = Default().OutputDir
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with environment fallbacks applied.
func Default() *Config {
	cfg := &Config{OutputDir: "finance_exports"}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if c.Remote.URL == "" {
		c.Remote.URL = os.Getenv(envRemoteURL)
	}
	if c.Remote.AdminKey == "" {
		c.Remote.AdminKey = os.Getenv(envAdminKey)
	}
	if c.Remote.UserTokenIdentifier == "" {
		c.Remote.UserTokenIdentifier = os.Getenv(envUserToken)
	}
}
