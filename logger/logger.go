// Package logger builds the zap logger used across the game.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	Development bool
}

// ForFlags maps the -debug flag onto a Config.
func ForFlags(debug bool) Config {
	if debug {
		return Config{Level: "debug", Development: true}
	}
	return Config{Level: "info"}
}

// New builds a logger. Development mode writes colored console output,
// otherwise sampled JSON is written to stderr.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Install builds a logger and makes it the global zap logger. The returned
// func restores the previous globals and flushes.
func Install(cfg Config) (func(), error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		undo()
	}, nil
}
