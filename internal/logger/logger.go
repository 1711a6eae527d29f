package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. mode "prod"/"production" emits JSON, any
// other value the console encoder; both write to stderr so stdout stays
// reserved for results. level is a zap level name ("debug", "info", ...).
func New(mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production", "json":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Quiet returns a logger that only reports errors.
func Quiet(mode string) (*zap.Logger, error) {
	return New(mode, "error")
}

// Sync flushes l, ignoring the EINVAL stderr returns on some platforms.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
