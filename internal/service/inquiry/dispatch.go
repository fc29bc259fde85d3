package inquiry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/pkg/observability"
)

const tracerName = "github.com/glowandgrind/site-api/internal/service/inquiry"

// dispatch sends every delivery concurrently and waits for all of them.
// One failing send never cancels the others. It returns how many failed.
func (s *inquiryService) dispatch(ctx context.Context, deliveries []repo.Delivery) (int, error) {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed int
		errs   []error
	)

	for i := range deliveries {
		d := &deliveries[i]
		g.Go(func() error {
			if err := s.deliver(ctx, d); err != nil {
				mu.Lock()
				failed++
				errs = append(errs, fmt.Errorf("%s email to %s: %w", d.Role, d.Recipient, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return failed, errors.Join(errs...)
}

// deliver performs one send attempt and stores its outcome on d.
func (s *inquiryService) deliver(ctx context.Context, d *repo.Delivery) error {
	// Sends outlive the request. The sender applies its own timeout.
	ctx = context.WithoutCancel(ctx)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "inquiry.deliver")
	defer span.End()
	span.SetAttributes(
		attribute.String("delivery.role", d.Role),
		attribute.String("delivery.id", d.ID.String()),
		attribute.Int("delivery.attempt", d.Attempts+1),
	)

	receipt, sendErr := s.sender.Send(ctx, messageFrom(*d))

	d.Attempts++
	d.Provider = receipt.Provider
	if sendErr != nil {
		d.Status = repo.DeliveryFailed
		d.LastError = sendErr.Error()
		span.RecordError(sendErr)
		span.SetStatus(codes.Error, "send failed")
	} else {
		now := s.now().UTC()
		d.Status = repo.DeliverySent
		d.ProviderMessageID = receipt.MessageID
		d.LastError = ""
		d.SentAt = &now
		span.SetStatus(codes.Ok, "")
	}
	observability.RecordDelivery(d.Role, d.Provider, d.Status)

	if err := s.store.SaveDelivery(ctx, d); err != nil {
		s.log.WarnContext(ctx, "save delivery outcome failed",
			"delivery_id", d.ID,
			"status", d.Status,
			"err", err,
		)
	}

	if sendErr != nil {
		s.log.WarnContext(ctx, "email send failed",
			"delivery_id", d.ID,
			"submission_id", d.SubmissionID,
			"role", d.Role,
			"attempt", d.Attempts,
			"err", sendErr,
		)
	}
	return sendErr
}

// RetryFailed replays failed deliveries that still have attempts left, and
// pending ones whose outcome was never recorded.
func (s *inquiryService) RetryFailed(ctx context.Context, limit int) (RetryReport, error) {
	if limit <= 0 {
		limit = s.cfg.BatchSize
	}

	pending, err := s.store.RetryableDeliveries(ctx, repo.RetryQuery{
		MaxAttempts: s.cfg.MaxAttempts,
		Limit:       limit,
		StaleBefore: s.now().Add(-s.cfg.StaleAfter),
	})
	if err != nil {
		return RetryReport{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(pending) == 0 {
		return RetryReport{}, nil
	}

	start := time.Now()
	failed, _ := s.dispatch(ctx, pending)

	touched := make(map[string]bool, len(pending))
	for _, d := range pending {
		key := d.SubmissionID.String()
		if touched[key] {
			continue
		}
		touched[key] = true
		s.refreshStatus(ctx, d.SubmissionID)
	}

	report := RetryReport{
		Attempted: len(pending),
		Sent:      len(pending) - failed,
		Failed:    failed,
	}
	s.log.InfoContext(ctx, "delivery retry finished",
		"attempted", report.Attempted,
		"sent", report.Sent,
		"failed", report.Failed,
		"duration", time.Since(start),
	)
	return report, nil
}
