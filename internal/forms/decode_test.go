package forms

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		form      any
		wantField string
		wantMsg   string
		malformed bool
	}{
		{name: "valid", body: `{"name":"Jane"}`, form: &ContactMessage{}},
		{name: "syntax error", body: `{"name":`, form: &ContactMessage{}, malformed: true},
		{name: "not an object", body: `"hello"`, form: &ContactMessage{}, malformed: true},
		{
			name:      "number as string",
			body:      `{"numberOfTrainees":"10"}`,
			form:      &TrainingInquiry{},
			wantField: "numberOfTrainees",
			wantMsg:   "Number of trainees must be a number",
		},
		{
			name:      "bool as string",
			body:      `{"agreeToTerms":"yes"}`,
			form:      &BookingRequest{},
			wantField: "agreeToTerms",
			wantMsg:   "Terms must be true or false",
		},
		{
			name:      "string as number",
			body:      `{"name":42}`,
			form:      &ContactMessage{},
			wantField: "name",
			wantMsg:   "Name must be text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(json.Unmarshal, []byte(tt.body), tt.form)

			switch {
			case tt.malformed:
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("Decode() error = %v, want ErrMalformed", err)
				}
			case tt.wantField == "":
				if err != nil {
					t.Errorf("Decode() error = %v", err)
				}
			default:
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Decode() error = %v, want *ValidationError", err)
				}
				if len(verr.Errors) != 1 || verr.Errors[0].Field != tt.wantField {
					t.Fatalf("errors = %+v, want field %s", verr.Errors, tt.wantField)
				}
				if verr.Errors[0].Message != tt.wantMsg {
					t.Errorf("message = %q, want %q", verr.Errors[0].Message, tt.wantMsg)
				}
			}
		})
	}
}
