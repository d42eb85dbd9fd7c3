package logger

import (
	"strings"

	"career-insights/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: JSON in production, console otherwise.
func New(app config.AppConfig, lc config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if app.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(lc.Level))
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	if app.AppName != "" {
		l = l.With(zap.String("app", app.AppName))
	}
	return l, nil
}
