package reqctx

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext returns the trace id of the active span, or "".
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// SpanIDFromContext returns the span id of the active span, or "".
func SpanIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasSpanID() {
		return ""
	}
	return sc.SpanID().String()
}

// LogAttrs returns the request and trace ids present in ctx as slog
// key/value pairs.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id := RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if id := TraceIDFromContext(ctx); id != "" {
		attrs = append(attrs, "trace_id", id)
	}
	return attrs
}
