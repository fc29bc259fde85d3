package reqctx

import (
	"context"
	"time"
)

type metaKey struct{}

// RequestMeta is attached to every inbound request by the request id
// middleware and travels with the context into services and logs.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	IdemKey     string // Idempotency-Key header, empty when absent
	RequestedAt time.Time
}

func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(metaKey{}).(*RequestMeta)
	return meta, ok && meta != nil
}

// MustRequestMeta panics when the middleware did not run.
func MustRequestMeta(ctx context.Context) *RequestMeta {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		panic("reqctx: request meta missing from context")
	}
	return meta
}

// RequestIDFromContext returns "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	if meta, ok := RequestMetaFromContext(ctx); ok {
		return meta.RequestID
	}
	return ""
}

func IdempotencyKeyFromContext(ctx context.Context) string {
	if meta, ok := RequestMetaFromContext(ctx); ok {
		return meta.IdemKey
	}
	return ""
}
