// Package log holds the process-wide logr logger backed by zap.
package log

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var DefaultLogger = initDefaultLogger()

func initDefaultLogger() logr.Logger {
	zapLog, err := zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	return zapr.NewLogger(zapLog)
}

func SetLogger(logger logr.Logger) {
	DefaultLogger = logger
}

// New builds a logger with the given encoding ("console" or "json").
// verbosity enables V(n) logs up to n.
func New(encoding string, verbosity int) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Encoding = encoding
	cfg.Sampling = nil
	// zap levels are negative logr verbosities
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zapLog, err := cfg.Build(
		zap.WithCaller(false),
	)
	if err != nil {
		return logr.Discard(), fmt.Errorf("build logger: %w", err)
	}
	return zapr.NewLoggerWithOptions(zapLog), nil
}
