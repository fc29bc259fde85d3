package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission statuses.
const (
	SubmissionReceived          = "received"
	SubmissionNotified          = "notified"
	SubmissionPartiallyNotified = "partially_notified"
	SubmissionNotifyFailed      = "notify_failed"
)

// Delivery roles and statuses.
const (
	RoleOperator  = "operator"
	RoleSubmitter = "submitter"

	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Submission is one accepted form post. It is written before any email is sent.
type Submission struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string     `gorm:"size:16;not null;index" json:"kind"`
	Reference  string     `gorm:"size:40;index" json:"reference,omitempty"`
	Name       string     `gorm:"size:150;not null" json:"name"`
	Email      string     `gorm:"size:254;not null;index" json:"email"`
	Payload    string     `gorm:"type:text;not null" json:"payload"`
	Status     string     `gorm:"size:24;not null;index" json:"status"`
	RequestID  string     `gorm:"size:64" json:"requestId,omitempty"`
	IdemKey    string     `gorm:"size:128;index" json:"idempotencyKey,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Deliveries []Delivery `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"deliveries,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id
	}
	if s.Status == "" {
		s.Status = SubmissionReceived
	}
	return nil
}

// Delivery is one outbound email belonging to a submission.
type Delivery struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"submissionId"`
	Role              string     `gorm:"size:16;not null" json:"role"`
	Recipient         string     `gorm:"size:254;not null" json:"recipient"`
	ReplyTo           string     `gorm:"size:254" json:"replyTo,omitempty"`
	Subject           string     `gorm:"size:255;not null" json:"subject"`
	TextBody          string     `gorm:"type:text" json:"-"`
	HTMLBody          string     `gorm:"type:text" json:"-"`
	Provider          string     `gorm:"size:32" json:"provider,omitempty"`
	ProviderMessageID string     `gorm:"size:255" json:"providerMessageId,omitempty"`
	Status            string     `gorm:"size:16;not null;index" json:"status"`
	Attempts          int        `gorm:"not null;default:0" json:"attempts"`
	LastError         string     `gorm:"type:text" json:"lastError,omitempty"`
	SentAt            *time.Time `json:"sentAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		d.ID = id
	}
	if d.Status == "" {
		d.Status = DeliveryPending
	}
	return nil
}

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{&Submission{}, &Delivery{}}
}
