package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smallbiznis/factura/internal/config"
)

// New builds the process logger. Level parsing is forgiving: an unknown
// level falls back to info rather than refusing to start.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

var Module = fx.Module("logger",
	fx.Provide(New),
)
