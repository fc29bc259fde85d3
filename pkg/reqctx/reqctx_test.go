package reqctx

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}

	ctx := WithRequestMeta(context.Background(), &RequestMeta{RequestID: "req-1"})
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
}

func TestMustRequestMeta_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRequestMeta() did not panic")
		}
	}()
	MustRequestMeta(context.Background())
}

func TestLogAttrs(t *testing.T) {
	tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid})

	ctx := WithRequestMeta(context.Background(), &RequestMeta{RequestID: "req-1"})
	ctx = trace.ContextWithSpanContext(ctx, sc)

	got := LogAttrs(ctx)
	want := []any{"request_id", "req-1", "trace_id", "4bf92f3577b34da6a3ce929d0e0e4736"}
	if len(got) != len(want) {
		t.Fatalf("LogAttrs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LogAttrs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if SpanIDFromContext(ctx) != "00f067aa0ba902b7" {
		t.Errorf("SpanIDFromContext() = %q", SpanIDFromContext(ctx))
	}

	if attrs := LogAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("LogAttrs(empty) = %v, want none", attrs)
	}
}

func TestIdempotencyKeyFromContext(t *testing.T) {
	ctx := WithRequestMeta(context.Background(), &RequestMeta{RequestID: "req-1", IdemKey: "k-42"})
	if got := IdempotencyKeyFromContext(ctx); got != "k-42" {
		t.Errorf("IdempotencyKeyFromContext() = %q, want k-42", got)
	}
	if got := IdempotencyKeyFromContext(context.Background()); got != "" {
		t.Errorf("IdempotencyKeyFromContext(empty) = %q, want empty", got)
	}
}
