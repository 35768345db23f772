package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from a file and applies environment
// variable overrides.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	if certPath := os.Getenv("SSH_CERTAUTH_CERT_PATH"); certPath != "" {
		cfg.Certificate.Path = certPath
		cfg.Certificate.Inline = ""
	}

	if auditPath := os.Getenv("SSH_CERTAUTH_AUDIT_DB"); auditPath != "" {
		cfg.Audit.Path = auditPath
	}

	if logLevel := os.Getenv("SSH_CERTAUTH_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("SSH_CERTAUTH_LOG_FORMAT"); logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	// Validate again after env overrides
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after env overrides: %w", err)
	}

	return cfg, nil
}
