package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/rs/zerolog"
)

// LogManager is a size-limited log file. It is an io.Writer that moves the
// file aside once a write would take it past LogConfig.MaxSize, then prunes
// backups by count and age.
type LogManager struct {
	config *LogConfig

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewLogManager returns a manager for cfg. The file is opened by GetWriter.
func NewLogManager(cfg *LogConfig) *LogManager {
	return &LogManager{config: cfg}
}

// CleanupLogFile truncates filePath if it exists.
func CleanupLogFile(filePath string) error {
	if filePath == "" {
		return nil
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.New(ErrLogDirectoryCreationFailed, "failed to create log directory", err)
	}
	if err := os.Truncate(filePath, 0); err != nil {
		return errors.New(ErrLogFileOpenFailed, "failed to truncate log file", err)
	}
	return nil
}

// GetWriter opens the log file, rotating it first if it is already over the
// limit, and returns the manager as the writer.
func (lm *LogManager) GetWriter() (io.Writer, error) {
	if lm.config.FilePath == "" {
		return nil, errors.New(ErrLogFilePathRequired, "no log file path specified", nil)
	}
	if err := os.MkdirAll(filepath.Dir(lm.config.FilePath), 0755); err != nil {
		return nil, errors.New(ErrLogDirectoryCreationFailed, "failed to create log directory", err)
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	info, err := os.Stat(lm.config.FilePath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.New(ErrLogRotationCheckFailed, "failed to check log rotation",
			errors.New(ErrLogFileStatFailed, "failed to stat log file", err))
	case lm.overLimit(info.Size()):
		if err := lm.rotate(); err != nil {
			return nil, errors.New(ErrLogRotationCheckFailed, "failed to check log rotation", err)
		}
	}

	if err := lm.open(); err != nil {
		return nil, err
	}
	return lm, nil
}

// Write appends p to the log file. A write that would cross the size limit
// goes to a fresh file; a single oversized write is never split.
func (lm *LogManager) Write(p []byte) (int, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.file == nil {
		return 0, errors.New(ErrLogFileOpenFailed, "log file is not open", nil)
	}
	if lm.size > 0 && lm.overLimit(lm.size+int64(len(p))) {
		if err := lm.rotate(); err != nil {
			return 0, err
		}
		if err := lm.open(); err != nil {
			return 0, err
		}
	}

	n, err := lm.file.Write(p)
	lm.size += int64(n)
	return n, err
}

// Close closes the current log file.
func (lm *LogManager) Close() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.file == nil {
		return nil
	}
	err := lm.file.Close()
	lm.file = nil
	return err
}

func (lm *LogManager) overLimit(size int64) bool {
	return lm.config.MaxSize > 0 && size >= int64(lm.config.MaxSize)<<20
}

// open requires lm.mu.
func (lm *LogManager) open() error {
	file, err := os.OpenFile(lm.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.New(ErrLogFileOpenFailed, "failed to open log file", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return errors.New(ErrLogFileStatFailed, "failed to stat log file", err)
	}
	lm.file, lm.size = file, info.Size()
	return nil
}

// rotate closes the current file and renames it to a timestamped backup.
// It requires lm.mu.
func (lm *LogManager) rotate() error {
	if lm.file != nil {
		lm.file.Close()
		lm.file, lm.size = nil, 0
	}

	backup := lm.config.FilePath + "." + time.Now().Format("2006-01-02-15-04-05.000000000")
	if err := os.Rename(lm.config.FilePath, backup); err != nil {
		return errors.New(ErrLogRotationFailed, "failed to rotate log file", err)
	}

	// The rotation stands even if pruning fails.
	if err := lm.prune(); err != nil {
		fmt.Fprintf(os.Stderr, "lendq: %v\n", errors.New(ErrLogCleanupFailed, "failed to prune log backups", err))
	}
	return nil
}

// prune drops the oldest backups beyond MaxBackups, then any older than
// MaxAge days.
func (lm *LogManager) prune() error {
	if lm.config.MaxBackups <= 0 && lm.config.MaxAge <= 0 {
		return nil
	}

	dir, base := filepath.Split(lm.config.FilePath)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.New(ErrLogBackupReadFailed, "failed to read log directory", err)
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() || !isBackupFile(entry.Name(), base) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{filepath.Join(dir, entry.Name()), info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})

	cutoff := time.Now().AddDate(0, 0, -lm.config.MaxAge)
	excess := 0
	if lm.config.MaxBackups > 0 && len(backups) > lm.config.MaxBackups {
		excess = len(backups) - lm.config.MaxBackups
	}
	for i, b := range backups {
		if i >= excess && (lm.config.MaxAge <= 0 || !b.modTime.Before(cutoff)) {
			continue
		}
		if err := os.Remove(b.path); err != nil {
			return errors.New(ErrLogBackupRemoveFailed, "failed to remove old backup", err).AddContext("backup_path", b.path)
		}
	}
	return nil
}

// isBackupFile reports whether name is baseName followed by a dot suffix.
func isBackupFile(name, baseName string) bool {
	return strings.HasPrefix(name, baseName+".") && len(name) > len(baseName)+1
}

// SetupLogger creates a configured zerolog logger based on the configuration.
// Console output goes to stdout.
func SetupLogger(cfg *Config) (zerolog.Logger, error) {
	return SetupLoggerWithConsole(cfg, os.Stdout)
}

// SetupLoggerWithConsole is SetupLogger with console output sent to console.
func SetupLoggerWithConsole(cfg *Config, console io.Writer) (zerolog.Logger, error) {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	// Create writers
	var writers []io.Writer

	// Console writer
	if cfg.Log.Console {
		if strings.EqualFold(cfg.Log.Format, LOG_FORMAT_JSON) {
			writers = append(writers, console)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        console,
				TimeFormat: time.RFC3339,
			})
		}
	}

	// File writer with rotation
	if cfg.Log.FilePath != "" {
		// Clean up the log file before starting logging if enabled
		if cfg.Log.Cleanup {
			if err := CleanupLogFile(cfg.Log.FilePath); err != nil {
				return zerolog.Logger{}, errors.New(ErrLogCleanupFailed, "failed to cleanup log file", err)
			}
		}

		logManager := NewLogManager(&cfg.Log)
		fileWriter, err := logManager.GetWriter()
		if err != nil {
			return zerolog.Logger{}, errors.New(ErrLogFileWriterSetupFailed, "failed to setup file writer", err)
		}

		// Add file writer directly (zerolog will handle JSON formatting)
		writers = append(writers, fileWriter)
	}

	// Create multi-writer
	var multiWriter io.Writer
	switch len(writers) {
	case 0:
		multiWriter = io.Discard
	case 1:
		multiWriter = writers[0]
	default:
		multiWriter = zerolog.MultiLevelWriter(writers...)
	}

	// Create logger
	logger := zerolog.New(multiWriter).Level(level).With().
		Timestamp().
		Str("component", "lendq").
		Logger()

	return logger, nil
}
