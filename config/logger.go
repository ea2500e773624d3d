package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level      slog.Level
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func ReadLogConfig() (LogConfig, error) {
	cfg := LogConfig{Dir: strings.TrimSpace(os.Getenv("LOG_DIR"))}
	if err := cfg.Level.UnmarshalText([]byte(envString("LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	var err error
	if cfg.MaxSizeMB, err = envInt("LOG_MAX_SIZE_MB", 50); err != nil {
		return cfg, err
	}
	if cfg.MaxBackups, err = envInt("LOG_MAX_BACKUPS", 5); err != nil {
		return cfg, err
	}
	if cfg.MaxAgeDays, err = envInt("LOG_MAX_AGE_DAYS", 14); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewLogger builds the process logger and installs it as the slog default.
// With a log dir the output also goes to a rotated file, uncolored.
func NewLogger(cfg LogConfig, fileName string) (*slog.Logger, error) {
	var w io.Writer = os.Stdout
	noColor := false

	if cfg.Dir != "" {
		if cfg.MaxSizeMB <= 0 || cfg.MaxBackups <= 0 || cfg.MaxAgeDays <= 0 {
			return nil, fmt.Errorf("invalid log config: size=%d backups=%d age_days=%d",
				cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir failed: %w", err)
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, fileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, logFile)
		noColor = true
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}))
	slog.SetDefault(logger)
	return logger, nil
}
