package inquiry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInternal = errors.New("internal error")
	ErrPersist  = errors.New("failed to save submission")
)

// DispatchError reports notification emails that could not be sent. The
// submission itself is stored and its failed deliveries can be replayed.
type DispatchError struct {
	SubmissionID uuid.UUID
	Failed       int
	Total        int
	Err          error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%d of %d notification emails failed for submission %s: %v", e.Failed, e.Total, e.SubmissionID, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// PublicMessage is safe to show to the person who submitted the form.
func (e *DispatchError) PublicMessage() string {
	if e.Failed >= e.Total {
		return "Your request was received, but we could not send the notification emails. Please try again later or contact us directly."
	}
	return fmt.Sprintf("Your request was received, but %d of %d notification emails could not be sent. Please contact us directly if you don't hear back.", e.Failed, e.Total)
}
