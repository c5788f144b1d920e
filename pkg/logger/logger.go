package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

func NewAppLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// SetLevel changes the level of every logger built by NewAppLogger.
func SetLevel(text string) error {
	return level.UnmarshalText([]byte(text))
}

func Sync(l *zap.SugaredLogger) {
	_ = l.Sync()
}
