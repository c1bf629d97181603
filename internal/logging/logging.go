// Package logging builds the application's zap logger. The terminal UI owns
// stdout, so logs are written to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level, destination and encoding.
type Config struct {
	Level    string // debug, info, warn, error
	Path     string // file path, "stderr" or "stdout"
	Encoding string // json or console
}

// DefaultPath resolves the log file path:
// 1. $XDG_STATE_HOME/focoleve/focoleve.log
// 2. ~/.local/state/focoleve/focoleve.log
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "focoleve", "focoleve.log"), nil
}

// New builds a logger for cfg. The returned function flushes buffered
// entries and should be deferred by the caller.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := zap.ParseAtomicLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	path := cfg.Path
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, nil, err
		}
	}
	if path != "stderr" && path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Encoding = orDefault(cfg.Encoding, "json")
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if zc.Encoding == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
