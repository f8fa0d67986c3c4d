// Package logging provides structured logging for the workorders client.
//
// This package wraps Go's log/slog to write JSON lines to a log file next to
// the client's configuration, so the terminal stays free for the UI. Every
// API call, bootstrap phase and user flow is logged with enough context to
// reconstruct what the client saw after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("profile loaded", "orders", 3)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	flowLogger := logger.WithFlow("open_order").WithOrder("ORD-1")
//	flowLogger.Warn("request failed", "status", 404)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"request failed","flow":"open_order","order_id":"ORD-1","status":404}
//
// # Testing
//
// Use [NopLogger] to discard all log output.
package logging
