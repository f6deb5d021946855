package main

import (
	"os"

	"github.com/gear6io/lendq/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrConfigRead  = errors.MustNewCode("codecheck.config_read_failed")
	ErrConfigParse = errors.MustNewCode("codecheck.config_parse_failed")
)

// Config represents the ErrorCode checker configuration
type Config struct {
	ExcludePaths      []string `yaml:"exclude_paths"`
	ForbiddenPatterns []string `yaml:"forbidden_patterns"`
	CheckForbidden    bool     `yaml:"check_forbidden"`
	CheckFormat       bool     `yaml:"check_format"`
	ExitOnUnused      bool     `yaml:"exit_on_unused"`
	ExitOnForbidden   bool     `yaml:"exit_on_forbidden"`
	ExitOnFormat      bool     `yaml:"exit_on_format"`
	Verbose           bool     `yaml:"verbose"`
}

// loadConfig loads configuration from file or uses defaults
func loadConfig(configPath string) (*Config, error) {
	config := &Config{
		ExcludePaths:      []string{"_examples/", "pkg/errors/", "scripts/", "testdata/", "logs/", "vendor/", ".git/"},
		ForbiddenPatterns: []string{`fmt\.Errorf`},
		CheckForbidden:    true,
		CheckFormat:       true,
		ExitOnUnused:      false,
		ExitOnForbidden:   false,
		ExitOnFormat:      true,
		Verbose:           false,
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.New(ErrConfigRead, "failed to read config file", err).AddContext("path", configPath)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.New(ErrConfigParse, "failed to parse config file", err).AddContext("path", configPath)
		}
	}

	return config, nil
}
