package email

import "fmt"

// ErrDisabled is returned by the SMTP client when email is turned off.
type ErrDisabled struct{}

func (ErrDisabled) Error() string { return "email is disabled" }

// ErrInvalidMessage rejects a message before any network call.
type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

// ErrSend wraps a provider failure. Provider is "gomail/smtp" or "resend".
type ErrSend struct {
	Provider string
	Err      error
}

func (e ErrSend) Error() string {
	return fmt.Sprintf("%s: send failed: %v", e.Provider, e.Err)
}

func (e ErrSend) Unwrap() error { return e.Err }

type ErrUnknownProvider struct{ Provider string }

func (e ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown email provider %q (want smtp or resend)", e.Provider)
}
