package forms

import (
	"fmt"
	"strings"
)

// FieldError is one violated rule, keyed by the dotted JSON path of the field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}
