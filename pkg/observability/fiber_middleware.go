package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/glowandgrind/site-api/pkg/observability"

// FiberMiddleware starts a server span per request and records request
// count and latency. Probe and scrape endpoints are not traced.
func FiberMiddleware(serviceName string, skipPrefixes ...string) fiber.Handler {
	tracer := otel.Tracer(tracerName)
	meter := otel.Meter(tracerName)

	requestCounter, _ := meter.Int64Counter(
		"http_server_request_count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	requestDuration, _ := meter.Float64Histogram(
		"http_server_request_duration_ms",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	skip := append([]string{"/livez", "/readyz", "/startupz", "/metrics"}, skipPrefixes...)

	return func(c fiber.Ctx) error {
		for _, p := range skip {
			if strings.HasPrefix(c.Path(), p) {
				return c.Next()
			}
		}

		ctx := otel.GetTextMapPropagator().Extract(
			c.Context(),
			propagation.HeaderCarrier(c.GetReqHeaders()),
		)

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.Path()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		c.SetContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set("X-Trace-Id", sc.TraceID().String())
		}

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		// The matched route is only known after routing.
		route := c.Route().Path
		span.SetName(c.Method() + " " + route)

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)

		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		requestCounter.Add(ctx, 1, attrs)
		requestDuration.Record(ctx, elapsed, attrs)

		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
			if err != nil {
				span.RecordError(err)
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
