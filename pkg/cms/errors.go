package cms

import (
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("cms: not configured")

// Error is a non-2xx answer from the query API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cms: query failed with status %d", e.Status)
	}
	return fmt.Sprintf("cms: query failed with status %d: %s", e.Status, e.Message)
}
