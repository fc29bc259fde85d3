// Package reqctx carries request-scoped data through context.Context.
//
// HTTP middleware stores a RequestMeta for every request. Services and
// loggers read it back without depending on the transport:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "0192f1c4-...",
//	    ClientIP:    "203.0.113.7",
//	    UserAgent:   "Mozilla/5.0",
//	    RequestedAt: time.Now(),
//	})
//
//	id := reqctx.RequestIDFromContext(ctx)
//
// Trace and span ids come from the active OpenTelemetry span, so they are
// only present when tracing is enabled.
//
// Context keys are unexported to prevent collisions.
package reqctx
