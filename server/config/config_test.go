package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := LoadDefaultConfig()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LOG_FORMAT_CONSOLE, cfg.Log.Format)
	assert.Equal(t, DEFAULT_MAX_FRAME_BYTES, cfg.Dispatch.MaxFrameBytes)
	assert.False(t, cfg.Dispatch.RejectTrailingBytes)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"zero frame", func(c *Config) { c.Dispatch.MaxFrameBytes = 0 }, ErrInvalidMaxFrameBytes},
		{"negative frame", func(c *Config) { c.Dispatch.MaxFrameBytes = -1 }, ErrInvalidMaxFrameBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), errors.FormatError(err))
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DEFAULT_CONFIG_FILE)

	cfg := LoadDefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Dispatch.RejectTrailingBytes = true
	cfg.Dispatch.MaxFrameBytes = 4096
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(path, []byte("dispatch:\n  reject_trailing_bytes: true\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Dispatch.RejectTrailingBytes)
	assert.Equal(t, DEFAULT_MAX_FRAME_BYTES, cfg.Dispatch.MaxFrameBytes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.True(t, errors.HasCode(err, ErrConfigFileReadFailed))

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("log: [unclosed"), 0644))
	_, err = LoadConfig(bad)
	assert.True(t, errors.HasCode(err, ErrConfigFileParseFailed))

	invalid := filepath.Join(dir, "invalid.yml")
	require.NoError(t, os.WriteFile(invalid, []byte("dispatch:\n  max_frame_bytes: 0\n"), 0644))
	_, err = LoadConfig(invalid)
	assert.True(t, errors.HasCode(err, ErrConfigValidationFailed))
	assert.True(t, errors.HasCode(err, ErrInvalidMaxFrameBytes))
}

func TestSetupLoggerConsoleJSON(t *testing.T) {
	cfg := LoadDefaultConfig()
	cfg.Log.FilePath = ""
	cfg.Log.Format = LOG_FORMAT_JSON
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := SetupLoggerWithConsole(cfg, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"component":"lendq"`)
}

func TestSetupLoggerWritesFile(t *testing.T) {
	cfg := LoadDefaultConfig()
	cfg.Log.Console = false
	cfg.Log.FilePath = filepath.Join(t.TempDir(), "logs", "lendq.log")

	logger, err := SetupLogger(cfg)
	require.NoError(t, err)
	logger.Info().Str("frame", "01").Msg("served")

	data, err := os.ReadFile(cfg.Log.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frame":"01"`)
}

func TestLogManagerRotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "lendq.log")

	// Three stale backups, oldest first.
	for i, name := range []string{"lendq.log.a", "lendq.log.b", "lendq.log.c"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("old"), 0644))
		mod := time.Now().Add(time.Duration(i-10) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}

	// Current file is over the 1MB limit.
	require.NoError(t, os.WriteFile(logPath, bytes.Repeat([]byte("x"), 1<<20), 0644))

	lm := NewLogManager(&LogConfig{FilePath: logPath, MaxSize: 1, MaxBackups: 2})
	w, err := lm.GetWriter()
	require.NoError(t, err)
	require.NotNil(t, w)
	defer lm.Close()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups []string
	for _, e := range entries {
		if isBackupFile(e.Name(), "lendq.log") {
			backups = append(backups, e.Name())
		}
	}
	assert.Len(t, backups, 2)
	assert.NotContains(t, backups, "lendq.log.a")
	assert.NotContains(t, backups, "lendq.log.b")
}

func TestCleanupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lendq.log")
	require.NoError(t, CleanupLogFile(path))
	require.NoError(t, CleanupLogFile(""))

	require.NoError(t, os.WriteFile(path, []byte("previous run"), 0644))
	require.NoError(t, CleanupLogFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLogManagerRotatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "lendq.log")
	require.NoError(t, os.WriteFile(logPath, bytes.Repeat([]byte("x"), 1<<20-8), 0644))

	lm := NewLogManager(&LogConfig{FilePath: logPath, MaxSize: 1, MaxBackups: 1})
	w, err := lm.GetWriter()
	require.NoError(t, err)
	defer lm.Close()

	// Still under the limit when opened.
	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.EqualValues(t, 1<<20-8, info.Size())

	n, err := w.Write([]byte("crosses the limit\n"))
	require.NoError(t, err)
	assert.Equal(t, 18, n)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "crosses the limit\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups []string
	for _, e := range entries {
		if isBackupFile(e.Name(), "lendq.log") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)
	backup, err := os.Stat(filepath.Join(dir, backups[0]))
	require.NoError(t, err)
	assert.EqualValues(t, 1<<20-8, backup.Size())

	// An oversized write to a fresh file is kept whole.
	require.NoError(t, lm.Close())
	require.NoError(t, os.Remove(logPath))
	w, err = lm.GetWriter()
	require.NoError(t, err)
	big := bytes.Repeat([]byte("y"), 1<<20+1)
	n, err = w.Write(big)
	require.NoError(t, err)
	assert.Equal(t, len(big), n)
	info, err = os.Stat(logPath)
	require.NoError(t, err)
	assert.EqualValues(t, len(big), info.Size())
}

func TestLogManagerWriteAfterClose(t *testing.T) {
	lm := NewLogManager(&LogConfig{FilePath: filepath.Join(t.TempDir(), "lendq.log")})
	_, err := lm.GetWriter()
	require.NoError(t, err)
	require.NoError(t, lm.Close())
	require.NoError(t, lm.Close())

	_, err = lm.Write([]byte("late"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrLogFileOpenFailed))
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("lendq.log.2026-01-02", "lendq.log"))
	assert.False(t, isBackupFile("lendq.log.", "lendq.log"))
	assert.False(t, isBackupFile("lendq.log", "lendq.log"))
	assert.False(t, isBackupFile("lendq.logx", "lendq.log"))
	assert.False(t, isBackupFile("other.log.1", "lendq.log"))
}
