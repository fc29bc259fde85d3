package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/forms"
	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/pkg/constants"
	"github.com/glowandgrind/site-api/pkg/email"
	"github.com/glowandgrind/site-api/pkg/observability"
	"github.com/glowandgrind/site-api/pkg/reqctx"
	"github.com/glowandgrind/site-api/pkg/util/codes"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Config struct {
	AdminEmail   string
	BusinessName string
	SiteURL      string
	MaxAttempts  int
	BatchSize    int
	// StaleAfter is how long a delivery may stay pending before replay
	// treats it as orphaned.
	StaleAfter time.Duration
}

func FromCentralConfig(c *config.Config) Config {
	return Config{
		AdminEmail:   c.Forms.AdminEmail,
		BusinessName: c.Forms.BusinessName,
		SiteURL:      c.Forms.SiteURL,
		MaxAttempts:  c.Notify.Retry.MaxAttempts,
		BatchSize:    c.Notify.Retry.BatchSize,
		StaleAfter:   staleAfter(c),
	}
}

// staleAfter defaults to twice the longest send timeout, so a send still in
// flight is never replayed.
func staleAfter(c *config.Config) time.Duration {
	if c.Notify.Retry.StaleAfterSeconds > 0 {
		return time.Duration(c.Notify.Retry.StaleAfterSeconds) * time.Second
	}
	cfg := email.FromCentralConfig(c.Email)
	return 2 * max(cfg.SMTPTimeout(), cfg.ResendTimeout())
}

type Result struct {
	SubmissionID       uuid.UUID
	ConfirmationNumber string
}

type RetryReport struct {
	Attempted int
	Sent      int
	Failed    int
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	SubmitBooking(ctx context.Context, req forms.BookingRequest) (*Result, error)
	SubmitContact(ctx context.Context, req forms.ContactMessage) (*Result, error)
	SubmitTraining(ctx context.Context, req forms.TrainingInquiry) (*Result, error)
	RetryFailed(ctx context.Context, limit int) (RetryReport, error)
	ListDeliveries(ctx context.Context, f repo.DeliveryFilter) ([]repo.Delivery, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type inquiryService struct {
	store     repo.Store
	sender    email.Sender
	validator *forms.Validator
	codes     *codes.Generator
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

func New(store repo.Store, sender email.Sender, validator *forms.Validator, gen *codes.Generator, cfg Config, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = time.Minute
	}
	return &inquiryService{
		store:     store,
		sender:    sender,
		validator: validator,
		codes:     gen,
		cfg:       cfg,
		log:       log.With("service", "inquiry"),
		now:       time.Now,
	}
}

func (s *inquiryService) branding() email.Branding {
	return email.Branding{
		BusinessName: s.cfg.BusinessName,
		SiteURL:      s.cfg.SiteURL,
		AdminEmail:   s.cfg.AdminEmail,
	}
}

func (s *inquiryService) SubmitBooking(ctx context.Context, req forms.BookingRequest) (*Result, error) {
	req.Normalize()
	if err := s.validate(constants.KindBooking, req); err != nil {
		return nil, err
	}

	ref, err := s.codes.ConfirmationNumber()
	if err != nil {
		s.log.ErrorContext(ctx, "confirmation number generation failed", "err", err)
		return nil, ErrInternal
	}

	data := email.BookingEmailData{
		Branding:           s.branding(),
		ConfirmationNumber: ref,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Service:            req.Service,
		PreferredDate:      req.PreferredDate,
		PreferredTime:      req.PreferredTime,
		SpecialRequests:    req.SpecialRequests,
		SubmittedAt:        s.now(),
	}

	return s.submit(ctx, submission{
		kind:      constants.KindBooking,
		reference: ref,
		name:      req.Name,
		email:     req.Email,
		payload:   req,
		operator:  func() (email.Message, error) { return email.BuildBookingAdminEmail(data) },
		submitter: func() (email.Message, error) { return email.BuildBookingConfirmationEmail(data) },
	})
}

func (s *inquiryService) SubmitContact(ctx context.Context, req forms.ContactMessage) (*Result, error) {
	req.Normalize()
	if err := s.validate(constants.KindContact, req); err != nil {
		return nil, err
	}

	data := email.ContactEmailData{
		Branding:    s.branding(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Category:    req.Category,
		Message:     req.Message,
		SubmittedAt: s.now(),
	}

	return s.submit(ctx, submission{
		kind:      constants.KindContact,
		name:      req.Name,
		email:     req.Email,
		payload:   req,
		operator:  func() (email.Message, error) { return email.BuildContactAdminEmail(data) },
		submitter: func() (email.Message, error) { return email.BuildContactAutoReplyEmail(data) },
	})
}

func (s *inquiryService) SubmitTraining(ctx context.Context, req forms.TrainingInquiry) (*Result, error) {
	req.Normalize()
	if err := s.validate(constants.KindTraining, req); err != nil {
		return nil, err
	}

	data := email.TrainingEmailData{
		Branding:         s.branding(),
		CompanyName:      req.CompanyName,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		TrainingType:     req.TrainingType,
		NumberOfTrainees: req.Trainees(),
		TrainingModule:   req.TrainingModule,
		PreferredDates:   req.PreferredDates,
		Message:          req.Message,
		Budget:           req.Budget,
		ReferralSource:   req.ReferralSource,
		SubmittedAt:      s.now(),
	}

	return s.submit(ctx, submission{
		kind:      constants.KindTraining,
		name:      req.ContactName,
		email:     req.ContactEmail,
		payload:   req,
		operator:  func() (email.Message, error) { return email.BuildTrainingAdminEmail(data) },
		submitter: func() (email.Message, error) { return email.BuildTrainingReceivedEmail(data) },
	})
}

func (s *inquiryService) ListDeliveries(ctx context.Context, f repo.DeliveryFilter) ([]repo.Delivery, error) {
	return s.store.ListDeliveries(ctx, f)
}

func (s *inquiryService) validate(kind string, req any) error {
	if err := s.validator.Validate(req); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			observability.RecordSubmission(kind, observability.OutcomeInvalid)
			return verr
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

type submission struct {
	kind      string
	reference string
	name      string
	email     string
	payload   any
	operator  func() (email.Message, error)
	submitter func() (email.Message, error)
}

// submit persists the submission with one pending delivery per recipient,
// then sends both emails and records every outcome.
func (s *inquiryService) submit(ctx context.Context, in submission) (*Result, error) {
	payload, err := json.Marshal(in.payload)
	if err != nil {
		s.log.ErrorContext(ctx, "encode submission payload failed", "kind", in.kind, "err", err)
		return nil, ErrInternal
	}

	opMsg, err := in.operator()
	if err != nil {
		s.log.ErrorContext(ctx, "render operator email failed", "kind", in.kind, "err", err)
		return nil, ErrInternal
	}
	subMsg, err := in.submitter()
	if err != nil {
		s.log.ErrorContext(ctx, "render submitter email failed", "kind", in.kind, "err", err)
		return nil, ErrInternal
	}

	sub := &repo.Submission{
		Kind:      in.kind,
		Reference: in.reference,
		Name:      in.name,
		Email:     in.email,
		Payload:   string(payload),
		Status:    repo.SubmissionReceived,
		RequestID: reqctx.RequestIDFromContext(ctx),
		IdemKey:   reqctx.IdempotencyKeyFromContext(ctx),
		Deliveries: []repo.Delivery{
			deliveryFrom(repo.RoleOperator, opMsg),
			deliveryFrom(repo.RoleSubmitter, subMsg),
		},
	}

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "persist submission failed", "kind", in.kind, "err", err)
		observability.RecordSubmission(in.kind, observability.OutcomeFailed)
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	start := time.Now()
	failed, dispatchErr := s.dispatch(ctx, sub.Deliveries)
	observability.ObserveDispatch(in.kind, time.Since(start))

	s.refreshStatus(ctx, sub.ID)

	result := &Result{SubmissionID: sub.ID, ConfirmationNumber: in.reference}

	if failed > 0 {
		observability.RecordSubmission(in.kind, observability.OutcomePartialNotify)
		s.log.ErrorContext(ctx, "notification dispatch failed",
			"kind", in.kind,
			"submission_id", sub.ID,
			"reference", in.reference,
			"failed", failed,
			"err", dispatchErr,
		)
		return result, &DispatchError{
			SubmissionID: sub.ID,
			Failed:       failed,
			Total:        len(sub.Deliveries),
			Err:          dispatchErr,
		}
	}

	observability.RecordSubmission(in.kind, observability.OutcomeAccepted)
	s.log.InfoContext(ctx, "submission accepted",
		"kind", in.kind,
		"submission_id", sub.ID,
		"reference", in.reference,
	)
	return result, nil
}

// refreshStatus recomputes a submission status from its deliveries.
func (s *inquiryService) refreshStatus(ctx context.Context, id uuid.UUID) {
	ctx = context.WithoutCancel(ctx)

	counts, err := s.store.CountDeliveries(ctx, id)
	if err != nil {
		s.log.WarnContext(ctx, "count deliveries failed", "submission_id", id, "err", err)
		return
	}
	if err := s.store.SetSubmissionStatus(ctx, id, repo.SubmissionStatusFor(counts)); err != nil {
		s.log.WarnContext(ctx, "update submission status failed", "submission_id", id, "err", err)
	}
}

func deliveryFrom(role string, m email.Message) repo.Delivery {
	to := ""
	if len(m.To) > 0 {
		to = m.To[0]
	}
	return repo.Delivery{
		Role:      role,
		Recipient: to,
		ReplyTo:   m.ReplyTo,
		Subject:   m.Subject,
		TextBody:  m.TextBody,
		HTMLBody:  m.HTMLBody,
		Status:    repo.DeliveryPending,
	}
}

func messageFrom(d repo.Delivery) email.Message {
	return email.Message{
		To:       []string{d.Recipient},
		ReplyTo:  d.ReplyTo,
		Subject:  d.Subject,
		TextBody: d.TextBody,
		HTMLBody: d.HTMLBody,
		Headers: map[string]string{
			"X-Submission-Id": d.SubmissionID.String(),
		},
	}
}
