// Package logging builds the zap logger shared by the API server and the CLI.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	File   string // optional log file, rotated, written in addition to stdout

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New creates a structured logger. When cfg.File is set, entries go to both stdout and
// the rotated file.
func New(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	sink := zapcore.AddSync(os.Stdout)
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(rotator(cfg)))
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func rotator(cfg Config) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	if l.MaxSize <= 0 {
		l.MaxSize = 100
	}
	if l.MaxBackups <= 0 {
		l.MaxBackups = 5
	}
	if l.MaxAge <= 0 {
		l.MaxAge = 28
	}
	return l
}
