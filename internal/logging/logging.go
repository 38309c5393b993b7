package logging

import (
	"go.uber.org/zap"

	"github.com/pageza/symptom-diary/backend/config"
)

// New builds the application logger: JSON in production, a readable
// console encoder everywhere else.
func New(env config.Environment) (*zap.Logger, error) {
	if env == config.Production {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	if env == config.Test || env == config.CI {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
