package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ssargent/binsave/pkg/api"
	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/store"
)

// newLogger builds a console logger at the named level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// installLogger hands logger to every package that logs
func installLogger(logger *zap.Logger) {
	codec.SetLogger(logger.Named("codec"))
	store.SetLogger(logger.Named("store"))
	api.SetLogger(logger.Named("api"))
}
