// Package logger provides structured logging with zap.
package logger

import "go.uber.org/zap"

// ServiceName tags every log line.
const ServiceName = "appall-leads"

// New creates a new zap.Logger depending on the environment.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("service", ServiceName))
}
