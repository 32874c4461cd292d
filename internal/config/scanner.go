package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScannerConfig holds settings for the standalone duplicate scanner.
type ScannerConfig struct {
	Content ContentConfig `yaml:"content,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// DefaultScanner returns a ScannerConfig with default values.
func DefaultScanner() *ScannerConfig {
	return &ScannerConfig{
		Content: DefaultContent(),
		Logging: LoggingConfig{Level: defaultLoggingLevel, Format: "console"},
	}
}

// LoadScanner builds the scanner configuration: defaults, then the optional
// YAML file at path, then environment overrides. An empty path skips the file.
func LoadScanner(path string) (*ScannerConfig, error) {
	cfg := DefaultScanner()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Content.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Logging.ApplyEnv()

	return cfg, nil
}
