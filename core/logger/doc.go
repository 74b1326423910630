// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and console or JSON encoding.
//
// # Run Correlation
//
// Each processed event gets a run id. The WithRun helper attaches the run id and
// the event id to a logger so that all warnings emitted while walking one event
// snapshot (unmatched cities, failed geocodes) can be grouped afterwards.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Run started")
//
//	l := logger.WithRun(log, runID, 190)
//	l.Warn("Could not find matching city", zap.String("search_name", name))
package logger
