// Package logging provides structured logging for socialintel.
//
// The Logger wraps zap with:
//   - a Trace level below Debug
//   - stdout output (JSON or console) and an optional OpenTelemetry bridge
//   - context fields (trace_id, session.id, request.id) added to every entry
//   - redaction of sensitive keys such as access_code and cookie
//   - level-aware sampling; errors are never sampled
//
// Usage:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRequestID(ctx, requestID)
//	logger.Info(ctx, "access attempt", zap.Stringer("result", result))
//
// The submitted access code must never be logged. If a handler has to
// mention it, use RedactedString, which keeps only the length.
//
// Tests can use NewTestLogger to assert on emitted entries.
package logging
