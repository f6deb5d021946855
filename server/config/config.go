package config

import (
	"os"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config represents the lendq configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Dispatch DispatchConfig `yaml:"dispatch"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // "json" or "console"
	FilePath   string `yaml:"file_path"`   // Path to log file
	Console    bool   `yaml:"console"`     // Whether to log to console
	MaxSize    int    `yaml:"max_size"`    // Max file size in MB
	MaxBackups int    `yaml:"max_backups"` // Max number of backup files
	MaxAge     int    `yaml:"max_age"`     // Max age in days
	Cleanup    bool   `yaml:"cleanup"`     // Whether to cleanup log file on startup
}

// DispatchConfig controls how request frames are handled
type DispatchConfig struct {
	// MaxFrameBytes rejects larger frames before decoding
	MaxFrameBytes int `yaml:"max_frame_bytes"`

	// RejectTrailingBytes answers a frame with bytes after the request with an
	// error instead of logging and ignoring them
	RejectTrailingBytes bool `yaml:"reject_trailing_bytes"`
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     LOG_FORMAT_CONSOLE,
			FilePath:   DEFAULT_LOG_FILE,
			Console:    true,
			MaxSize:    100, // 100MB
			MaxBackups: 3,
			MaxAge:     7, // 7 days
			Cleanup:    false,
		},
		Dispatch: DispatchConfig{
			MaxFrameBytes:       DEFAULT_MAX_FRAME_BYTES,
			RejectTrailingBytes: false,
		},
	}
}

// LoadConfig loads configuration from a file. Keys missing from the file keep
// their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New(ErrConfigFileReadFailed, "failed to read config file", err).AddContext("path", filename)
	}

	config := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ErrConfigFileParseFailed, "failed to parse config file", err).AddContext("path", filename)
	}

	// Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.New(ErrConfigFileMarshalFailed, "failed to marshal config", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.New(ErrConfigFileWriteFailed, "failed to write config file", err).AddContext("path", filename)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return errors.New(ErrLogValidationFailed, "log validation failed", err)
	}

	if err := c.Dispatch.Validate(); err != nil {
		return errors.New(ErrDispatchValidationFailed, "dispatch validation failed", err)
	}

	return nil
}

// Validate validates the logging configuration
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return errors.New(ErrInvalidLogLevel, "unknown log level", err).AddContext("level", l.Level)
	}

	switch strings.ToLower(l.Format) {
	case LOG_FORMAT_CONSOLE, LOG_FORMAT_JSON, "":
	default:
		return errors.Newf(ErrInvalidLogFormat, "log format must be %q or %q", LOG_FORMAT_CONSOLE, LOG_FORMAT_JSON).AddContext("format", l.Format)
	}

	return nil
}

// Validate validates the dispatch configuration
func (d *DispatchConfig) Validate() error {
	if d.MaxFrameBytes < MIN_FRAME_BYTES {
		return errors.Newf(ErrInvalidMaxFrameBytes, "max_frame_bytes must be at least %d", MIN_FRAME_BYTES)
	}
	return nil
}
