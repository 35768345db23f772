package config

import "fmt"

// Config holds all configuration for the certificate authentication
// subsystem and its tooling.
type Config struct {
	Certificate CertificateConfig `yaml:"certificate"`
	Audit       AuditConfig       `yaml:"audit"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CertificateConfig locates the certificate to authenticate with. Path
// points at an OpenSSH *-cert.pub file; Inline carries the same
// "type base64data [comment]" content directly.
type CertificateConfig struct {
	Path   string `yaml:"path"`
	Inline string `yaml:"inline"`
}

// AuditConfig contains the authentication decision log configuration.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// Certificate validation
	if c.Certificate.Path != "" && c.Certificate.Inline != "" {
		return fmt.Errorf("certificate.path and certificate.inline are mutually exclusive")
	}

	// Audit validation
	if c.Audit.Enabled && c.Audit.Path == "" {
		return fmt.Errorf("audit.path is required when audit.enabled is true")
	}

	// Logging validation
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be 'json' or 'text'")
	}

	return nil
}

// Default returns a configuration with no certificate, auditing
// disabled, and text logging at info level.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
