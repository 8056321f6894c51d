// Package logging provides structured logging for the MotoVision client.
//
// It wraps a zap logger behind package-level helpers. Logging is silent by
// default so the interactive TUI output is never polluted; set the
// MOTOVISION_LOG_LEVEL environment variable (debug, info, warn, error) to
// enable it.
//
// All log functions use structured fields:
//
//	logging.Debug("request completed",
//	    zap.String("method", "GET"),
//	    zap.String("path", "/motos/todos"),
//	    zap.Int("status", 200),
//	)
//
// All logging functions are safe for concurrent use.
package logging
