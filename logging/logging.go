package logging

import "go.uber.org/zap"

// New creates a zap logger for the given environment. production gets a
// JSON info-level logger, development a console debug-level logger and
// anything else (local, test) falls back to the example logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
