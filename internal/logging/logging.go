// Package logging builds the single *zap.Logger passed explicitly through
// the pipeline and its compute stages; there is no package-level global.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger at the level implied by verbosity
// (0..3, matching the --verbosity CLI flag in §6): 0 is warn-and-above,
// 3 is debug.
func New(verbosity int) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch {
	case verbosity <= 0:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case verbosity == 1:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return logger, nil
}
