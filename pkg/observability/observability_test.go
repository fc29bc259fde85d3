package observability

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSubmission(t *testing.T) {
	before := testutil.ToFloat64(submissionsTotal.WithLabelValues("booking", OutcomeAccepted))
	RecordSubmission("booking", OutcomeAccepted)
	after := testutil.ToFloat64(submissionsTotal.WithLabelValues("booking", OutcomeAccepted))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRecordDelivery_UnknownProvider(t *testing.T) {
	before := testutil.ToFloat64(deliveriesTotal.WithLabelValues("operator", "unknown", "failed"))
	RecordDelivery("operator", "", "failed")
	after := testutil.ToFloat64(deliveriesTotal.WithLabelValues("operator", "unknown", "failed"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestInitTelemetry_NoExporters(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "glowgrind-test"})
	if err != nil {
		t.Fatalf("InitTelemetry() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestFiberMiddleware_SetsTraceHeader(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "glowgrind-test"})
	if err != nil {
		t.Fatalf("InitTelemetry() error = %v", err)
	}
	defer func() { _ = p.Shutdown(context.Background()) }()

	app := fiber.New()
	app.Use(FiberMiddleware("glowgrind-test"))
	app.Get("/api/v1/forms", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/livez", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/forms", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.Header.Get("X-Trace-Id") == "" {
		t.Error("X-Trace-Id header missing on traced route")
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/livez", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.Header.Get("X-Trace-Id") != "" {
		t.Error("probe endpoint should not be traced")
	}
}
