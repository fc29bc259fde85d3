package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{
			name: "text and html",
			from: "Studio <hello@example.com>",
			msg:  Message{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "hi", HTMLBody: "<p>hi</p>"},
		},
		{
			name:    "missing from",
			msg:     Message{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "hi"},
			wantErr: true,
		},
		{
			name:    "missing recipient",
			from:    "hello@example.com",
			msg:     Message{To: []string{"  "}, Subject: "Hi", TextBody: "hi"},
			wantErr: true,
		},
		{
			name:    "missing subject",
			from:    "hello@example.com",
			msg:     Message{To: []string{"a@example.com"}, TextBody: "hi"},
			wantErr: true,
		},
		{
			name:    "missing body",
			from:    "hello@example.com",
			msg:     Message{To: []string{"a@example.com"}, Subject: "Hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var inv ErrInvalidMessage
				if !errors.As(err, &inv) {
					t.Errorf("expected ErrInvalidMessage, got %T", err)
				}
			}
		})
	}
}

func TestClient_Disabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Send(context.Background(), Message{To: []string{"a@example.com"}})
	if !errors.As(err, &ErrDisabled{}) {
		t.Errorf("Send() error = %v, want ErrDisabled", err)
	}
}

func TestNew_RequiresHostWhenEnabled(t *testing.T) {
	if _, err := New(Config{Enabled: true}); err == nil {
		t.Error("expected error without smtp host")
	}
}

func TestMessageID(t *testing.T) {
	id := messageID("Glow & Grind <hello@glowandgrind.studio>")
	if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, "@glowandgrind.studio>") {
		t.Errorf("messageID() = %q", id)
	}
	if got := messageID("not an address"); !strings.HasSuffix(got, "@localhost>") {
		t.Errorf("messageID(invalid) = %q, want localhost domain", got)
	}
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{name: "disabled", cfg: Config{Enabled: false}, want: "*email.LogSender"},
		{name: "smtp", cfg: Config{Enabled: true, Provider: "smtp", SMTPHost: "mail.example.com"}, want: "*email.Client"},
		{name: "default provider", cfg: Config{Enabled: true, SMTPHost: "mail.example.com"}, want: "*email.Client"},
		{name: "resend", cfg: Config{Enabled: true, Provider: "resend", ResendAPIKey: "re_test"}, want: "*email.ResendSender"},
		{name: "resend without key", cfg: Config{Enabled: true, Provider: "resend"}, wantErr: true},
		{name: "unknown", cfg: Config{Enabled: true, Provider: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSender(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSender() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := fmt.Sprintf("%T", s); got != tt.want {
				t.Errorf("NewSender() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLogSender(t *testing.T) {
	r, err := NewLogSender(nil).Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if r.Provider != ProviderDisabled {
		t.Errorf("Provider = %q, want %q", r.Provider, ProviderDisabled)
	}
}

func TestResendSender_Send(t *testing.T) {
	var got map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			http.Error(w, "unexpected route", http.StatusNotFound)
			return
		}
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	s, err := NewResend(Config{
		Enabled:       true,
		From:          "Studio <hello@example.com>",
		ResendAPIKey:  "re_test",
		ResendBaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewResend() error = %v", err)
	}

	r, err := s.Send(context.Background(), Message{
		To:       []string{"client@example.com"},
		ReplyTo:  "owner@example.com",
		Subject:  "Booking received",
		TextBody: "thanks",
		HTMLBody: "<p>thanks</p>",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if r.Provider != ProviderResend || r.MessageID != "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794" {
		t.Errorf("receipt = %+v", r)
	}
	if auth != "Bearer re_test" {
		t.Errorf("Authorization = %q", auth)
	}
	if got["subject"] != "Booking received" || got["from"] != "Studio <hello@example.com>" {
		t.Errorf("request body = %v", got)
	}
}

func TestResendSender_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer srv.Close()

	s, err := NewResend(Config{Enabled: true, From: "hello@example.com", ResendAPIKey: "re_test", ResendBaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewResend() error = %v", err)
	}

	_, err = s.Send(context.Background(), Message{To: []string{"x@example.com"}, Subject: "Hi", TextBody: "hi"})
	var sendErr ErrSend
	if !errors.As(err, &sendErr) || sendErr.Provider != "resend" {
		t.Errorf("Send() error = %v, want ErrSend from resend", err)
	}
}

func TestTemplates_BookingEmails(t *testing.T) {
	data := BookingEmailData{
		Branding:           Branding{BusinessName: "Glow & Grind", SiteURL: "https://example.com", AdminEmail: "owner@example.com"},
		ConfirmationNumber: "BK-LOYW3V28-AB12",
		Name:               "Jane <script>alert(1)</script>",
		Email:              "jane@example.com",
		Phone:              "+1 415 555 2671",
		Service:            "special-event",
		PreferredDate:      "2026-04-01",
		PreferredTime:      "evening",
		SpecialRequests:    "Airbrush please\nand lashes",
		SubmittedAt:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	admin, err := BuildBookingAdminEmail(data)
	if err != nil {
		t.Fatalf("BuildBookingAdminEmail() error = %v", err)
	}
	if admin.To[0] != "owner@example.com" || admin.ReplyTo != "jane@example.com" {
		t.Errorf("admin routing = to %v reply-to %q", admin.To, admin.ReplyTo)
	}
	if !strings.Contains(admin.Subject, "BK-LOYW3V28-AB12") || !strings.Contains(admin.Subject, "Special event") {
		t.Errorf("admin subject = %q", admin.Subject)
	}
	if strings.Contains(admin.HTMLBody, "<script>") {
		t.Error("admin html must escape submitted values")
	}
	if !strings.Contains(admin.HTMLBody, "Airbrush please<br>and lashes") {
		t.Error("admin html should keep line breaks of special requests")
	}
	if !strings.Contains(admin.TextBody, "Preferred time: Evening") {
		t.Errorf("admin text body = %q", admin.TextBody)
	}

	confirm, err := BuildBookingConfirmationEmail(data)
	if err != nil {
		t.Fatalf("BuildBookingConfirmationEmail() error = %v", err)
	}
	if confirm.To[0] != "jane@example.com" {
		t.Errorf("confirmation to = %v", confirm.To)
	}
	if !strings.Contains(confirm.HTMLBody, "BK-LOYW3V28-AB12") || !strings.Contains(confirm.TextBody, "BK-LOYW3V28-AB12") {
		t.Error("confirmation must carry the confirmation number in both bodies")
	}
}

func TestTemplates_ContactAndTraining(t *testing.T) {
	brand := Branding{BusinessName: "Glow & Grind", AdminEmail: "owner@example.com"}

	c := ContactEmailData{Branding: brand, Name: "Jane", Email: "jane@example.com", Subject: "Collab", Category: "collaboration", Message: "Let's shoot together."}
	for _, build := range []func(ContactEmailData) (Message, error){BuildContactAdminEmail, BuildContactAutoReplyEmail} {
		m, err := build(c)
		if err != nil {
			t.Fatalf("contact build error = %v", err)
		}
		if m.Subject == "" || m.TextBody == "" || m.HTMLBody == "" {
			t.Errorf("contact message incomplete: %+v", m)
		}
	}

	tr := TrainingEmailData{Branding: brand, CompanyName: "Bean There", ContactName: "Sam", ContactEmail: "sam@example.com", ContactPhone: "+14155552671", TrainingType: "group", NumberOfTrainees: 1, Message: "Opening soon."}
	received, err := BuildTrainingReceivedEmail(tr)
	if err != nil {
		t.Fatalf("BuildTrainingReceivedEmail() error = %v", err)
	}
	if !strings.Contains(received.TextBody, "1 trainee (") {
		t.Errorf("singular trainee wording missing: %q", received.TextBody)
	}

	admin, err := BuildTrainingAdminEmail(tr)
	if err != nil {
		t.Fatalf("BuildTrainingAdminEmail() error = %v", err)
	}
	if admin.To[0] != "owner@example.com" || !strings.Contains(admin.Subject, "Bean There") {
		t.Errorf("training admin = to %v subject %q", admin.To, admin.Subject)
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"special-event":      "Special event",
		"milk-and-latte-art": "Milk and latte art",
		"":                   "",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMessagePrepare(t *testing.T) {
	m := Message{
		To:       []string{" a@example.com ", ""},
		CC:       []string{"  "},
		ReplyTo:  " owner@example.com ",
		Subject:  "  Hi  ",
		TextBody: "hi",
		HTMLBody: "   ",
		Headers:  map[string]string{"X-Submission-Id": " 42 ", " ": "dropped"},
	}

	out, err := m.prepare(" hello@example.com ")
	if err != nil {
		t.Fatalf("prepare() error = %v", err)
	}
	if out.From != "hello@example.com" || out.Subject != "Hi" || out.ReplyTo != "owner@example.com" {
		t.Errorf("prepare() = %+v", out)
	}
	if len(out.To) != 1 || out.To[0] != "a@example.com" || len(out.CC) != 0 {
		t.Errorf("recipients = to %v cc %v", out.To, out.CC)
	}
	if out.HTMLBody != "" {
		t.Errorf("blank html body should be dropped, got %q", out.HTMLBody)
	}
	if len(out.Headers) != 1 || out.Headers["X-Submission-Id"] != "42" {
		t.Errorf("headers = %v", out.Headers)
	}
}

func TestClient_SendHonoursContextDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	// Accept and never greet, so the SMTP handshake hangs.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	c, err := New(Config{Enabled: true, From: "hello@example.com", SMTPHost: "127.0.0.1", SMTPPort: addr.Port})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = c.Send(ctx, Message{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "hi"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Send() error = %v, want deadline exceeded", err)
	}
	var sendErr ErrSend
	if !errors.As(err, &sendErr) || sendErr.Provider != providerNameSMTP {
		t.Errorf("Send() error = %v, want ErrSend", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Send() took %v, want close to the context deadline", elapsed)
	}
}
