package kit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	Level    string
	Encoding string
}

// NewLogger builds a production zap logger tagged with the service name.
// Unknown levels fall back to info; unknown encodings fall back to json.
func NewLogger(service string, lc LogConfig) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}

	if lvl, err := zapcore.ParseLevel(lc.Level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if lc.Encoding == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
