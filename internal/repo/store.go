package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RetryQuery selects deliveries to replay. Pending rows untouched since
// StaleBefore were orphaned by a crash or a lost outcome write; a zero
// StaleBefore leaves pending rows alone.
type RetryQuery struct {
	MaxAttempts int
	Limit       int
	StaleBefore time.Time
}

type DeliveryFilter struct {
	Status       string
	SubmissionID uuid.UUID
	Limit        int
}

// Store persists submissions and their deliveries.
type Store interface {
	CreateSubmission(ctx context.Context, s *Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error)
	SetSubmissionStatus(ctx context.Context, id uuid.UUID, status string) error
	SaveDelivery(ctx context.Context, d *Delivery) error
	ListDeliveries(ctx context.Context, f DeliveryFilter) ([]Delivery, error)
	RetryableDeliveries(ctx context.Context, q RetryQuery) ([]Delivery, error)
	CountDeliveries(ctx context.Context, submissionID uuid.UUID) (DeliveryCounts, error)
}

type DeliveryCounts struct {
	Sent    int
	Failed  int
	Pending int
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// CreateSubmission inserts the submission together with its pending deliveries.
func (s *gormStore) CreateSubmission(ctx context.Context, sub *Submission) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (s *gormStore) GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var sub Submission
	err := s.db.WithContext(ctx).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&sub, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) SetSubmissionStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := s.db.WithContext(ctx).Model(&Submission{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("set submission status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDelivery writes the outcome columns of d.
func (s *gormStore) SaveDelivery(ctx context.Context, d *Delivery) error {
	res := s.db.WithContext(ctx).Model(d).
		Select("Status", "Attempts", "Provider", "ProviderMessageID", "LastError", "SentAt").
		Updates(d)
	if res.Error != nil {
		return fmt.Errorf("save delivery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListDeliveries(ctx context.Context, f DeliveryFilter) ([]Delivery, error) {
	q := s.db.WithContext(ctx).Model(&Delivery{}).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SubmissionID != uuid.Nil {
		q = q.Where("submission_id = ?", f.SubmissionID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []Delivery
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return out, nil
}

// RetryableDeliveries returns failed and stale pending deliveries that still
// have attempts left, oldest first.
func (s *gormStore) RetryableDeliveries(ctx context.Context, rq RetryQuery) ([]Delivery, error) {
	q := s.db.WithContext(ctx).Order("updated_at ASC")
	if rq.StaleBefore.IsZero() {
		q = q.Where("status = ?", DeliveryFailed)
	} else {
		q = q.Where("status = ? OR (status = ? AND updated_at < ?)",
			DeliveryFailed, DeliveryPending, rq.StaleBefore.UTC())
	}
	if rq.MaxAttempts > 0 {
		q = q.Where("attempts < ?", rq.MaxAttempts)
	}
	if rq.Limit > 0 {
		q = q.Limit(rq.Limit)
	}

	var out []Delivery
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("retryable deliveries: %w", err)
	}
	return out, nil
}

func (s *gormStore) CountDeliveries(ctx context.Context, submissionID uuid.UUID) (DeliveryCounts, error) {
	var rows []struct {
		Status string
		N      int
	}
	err := s.db.WithContext(ctx).Model(&Delivery{}).
		Select("status, COUNT(*) AS n").
		Where("submission_id = ?", submissionID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return DeliveryCounts{}, fmt.Errorf("count deliveries: %w", err)
	}

	var c DeliveryCounts
	for _, r := range rows {
		switch r.Status {
		case DeliverySent:
			c.Sent = r.N
		case DeliveryFailed:
			c.Failed = r.N
		default:
			c.Pending += r.N
		}
	}
	return c, nil
}

// SubmissionStatusFor derives the submission status from its delivery counts.
func SubmissionStatusFor(c DeliveryCounts) string {
	switch {
	case c.Pending > 0 && c.Sent == 0 && c.Failed == 0:
		return SubmissionReceived
	case c.Failed == 0 && c.Pending == 0:
		return SubmissionNotified
	case c.Sent == 0:
		return SubmissionNotifyFailed
	default:
		return SubmissionPartiallyNotified
	}
}
