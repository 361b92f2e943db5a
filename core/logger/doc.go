// Package logger builds the zap loggers used across the service.
//
// New builds a logger from Config. The debug level selects zap's development
// preset, any other level the production preset.
//
// # Context Awareness
//
// WithRayID copies the request's ray id from the Fiber context onto the
// logger so every line of one request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Starting server", zap.String("port", cfg.Server.Port))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Reconciliation failed", zap.Error(err))
package logger
