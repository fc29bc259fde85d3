package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/forms"
	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/internal/service/content"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
	"github.com/glowandgrind/site-api/pkg/database"
	"github.com/glowandgrind/site-api/pkg/email"
	"github.com/glowandgrind/site-api/pkg/util/codes"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

type recordingSender struct {
	mu      sync.Mutex
	sent    []email.Message
	failFor string
}

func (r *recordingSender) Send(_ context.Context, m email.Message) (email.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	if r.failFor != "" && m.To[0] == r.failFor {
		return email.Receipt{}, errors.New("smtp: 550 mailbox unavailable")
	}
	return email.Receipt{Provider: "test", MessageID: "<ok>"}, nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recordingSender) recipients() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.sent))
	for _, m := range r.sent {
		out[m.To[0]]++
	}
	return out
}

type testContent struct{}

func (testContent) Section(_ context.Context, name string) (json.RawMessage, error) {
	switch name {
	case content.SectionHero:
		return json.RawMessage(`{"title":"Glow & Grind"}`), nil
	case content.SectionServices:
		return nil, content.ErrUpstream
	case content.SectionTimeline:
		return nil, content.ErrUnavailable
	}
	return nil, content.ErrUnknownSection
}

func newTestApp(t *testing.T, sender *recordingSender) *fiber.App {
	t.Helper()

	db, err := database.New(database.Config{Driver: database.DriverSQLite, Path: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(context.Background(), repo.Models()...); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	v, err := forms.New(forms.Config{Timezone: "UTC", PhoneRegion: "US"}, forms.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("forms.New() error = %v", err)
	}

	svc := inquiry.New(repo.NewStore(db.Gorm()), sender, v, codes.NewGenerator(codes.DefaultConfig()), inquiry.Config{
		AdminEmail:   "owner@glowandgrind.test",
		BusinessName: "Glow & Grind",
		MaxAttempts:  3,
	}, nil)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	ih := NewInquiryHandler(svc, nil)
	app.Post("/bookings", ih.Booking)
	app.Post("/contact", ih.Contact)
	app.Post("/training-inquiries", ih.Training)

	fh := NewFormsHandler()
	app.Get("/forms", fh.List)
	app.Get("/forms/:form/schema", fh.Schema)

	ch := NewContentHandler(testContent{})
	app.Get("/content/:section", ch.Section)

	return app
}

type response struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []forms.FieldError `json:"errors"`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, response) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	var out response
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func booking(date string) map[string]any {
	return map[string]any{
		"name":          "Jane Doe",
		"email":         "jane@example.com",
		"phone":         "+1 415 555 2671",
		"service":       "bridal",
		"preferredDate": date,
		"preferredTime": "morning",
		"agreeToTerms":  true,
	}
}

func training(trainees int) map[string]any {
	return map[string]any{
		"companyName":      "Bean There",
		"contactName":      "Sam Roaster",
		"contactEmail":     "sam@beanthere.com",
		"contactPhone":     "+14155552671",
		"trainingType":     "group",
		"numberOfTrainees": trainees,
		"preferredDates":   "Any weekday in May",
		"message":          "We are opening a second location soon.",
	}
}

func hasField(errs []forms.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestBooking_Success(t *testing.T) {
	sender := &recordingSender{}
	app := newTestApp(t, sender)

	status, resp := do(t, app, http.MethodPost, "/bookings", mustJSON(t, booking("2026-03-10")))

	if status != http.StatusOK || !resp.Success {
		t.Fatalf("status = %d, resp = %+v", status, resp)
	}
	var data struct {
		ConfirmationNumber string `json:"confirmationNumber"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !codes.ConfirmationPattern.MatchString(data.ConfirmationNumber) {
		t.Errorf("confirmationNumber = %q", data.ConfirmationNumber)
	}
	if sender.count() != 2 {
		t.Errorf("sent %d emails, want 2", sender.count())
	}
	to := sender.recipients()
	if to["owner@glowandgrind.test"] != 1 || to["jane@example.com"] != 1 {
		t.Errorf("recipients = %v, want one email to the admin and one to the submitter", to)
	}
}

func TestBooking_PastDateRejected(t *testing.T) {
	sender := &recordingSender{}
	app := newTestApp(t, sender)

	status, resp := do(t, app, http.MethodPost, "/bookings", mustJSON(t, booking("2026-03-09")))

	if status != http.StatusBadRequest || resp.Success {
		t.Fatalf("status = %d, resp = %+v", status, resp)
	}
	if resp.Message != "Validation failed" || !hasField(resp.Errors, "preferredDate") {
		t.Errorf("resp = %+v, want preferredDate error", resp)
	}
	if sender.count() != 0 {
		t.Errorf("sent %d emails, want 0", sender.count())
	}
}

func TestBooking_BadEmailAndMissingFields(t *testing.T) {
	app := newTestApp(t, &recordingSender{})

	status, resp := do(t, app, http.MethodPost, "/bookings", `{"email":"not-an-email"}`)

	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	for _, f := range []string{"name", "email", "service", "preferredDate", "preferredTime", "agreeToTerms"} {
		if !hasField(resp.Errors, f) {
			t.Errorf("missing error for %q in %+v", f, resp.Errors)
		}
	}
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(t, &recordingSender{})

	for _, path := range []string{"/bookings", "/contact", "/training-inquiries"} {
		t.Run(path, func(t *testing.T) {
			status, resp := do(t, app, http.MethodPost, path, `{"name":`)
			if status != http.StatusBadRequest || resp.Message != msgInvalidBody {
				t.Errorf("status = %d, message = %q", status, resp.Message)
			}
		})
	}
}

func TestWrongTypedFields(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{name: "trainees as string", path: "/training-inquiries", body: `{"numberOfTrainees":"10"}`, field: "numberOfTrainees"},
		{name: "terms as string", path: "/bookings", body: `{"agreeToTerms":"yes"}`, field: "agreeToTerms"},
		{name: "name as number", path: "/contact", body: `{"name":7}`, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			app := newTestApp(t, sender)

			status, resp := do(t, app, http.MethodPost, tt.path, tt.body)
			if status != http.StatusBadRequest || resp.Message != "Validation failed" {
				t.Fatalf("status = %d, message = %q, want 400 Validation failed", status, resp.Message)
			}
			if !hasField(resp.Errors, tt.field) {
				t.Errorf("errors = %+v, want %s", resp.Errors, tt.field)
			}
			if sender.count() != 0 {
				t.Errorf("sent %d emails, want 0", sender.count())
			}
		})
	}
}

func TestContact_Success(t *testing.T) {
	sender := &recordingSender{}
	app := newTestApp(t, sender)

	status, resp := do(t, app, http.MethodPost, "/contact", mustJSON(t, map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Lessons",
		"message": "Do you offer private makeup lessons?",
	}))

	if status != http.StatusOK || resp.Message != msgContactReceived {
		t.Fatalf("status = %d, resp = %+v", status, resp)
	}
	if len(resp.Data) != 0 {
		t.Errorf("data = %s, want omitted", resp.Data)
	}
}

func TestTraining_TraineeBounds(t *testing.T) {
	tests := []struct {
		trainees int
		want     int
	}{
		{trainees: 0, want: http.StatusBadRequest},
		{trainees: 1, want: http.StatusOK},
		{trainees: 50, want: http.StatusOK},
		{trainees: 51, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.trainees), func(t *testing.T) {
			app := newTestApp(t, &recordingSender{})
			status, resp := do(t, app, http.MethodPost, "/training-inquiries", mustJSON(t, training(tt.trainees)))
			if status != tt.want {
				t.Fatalf("status = %d, want %d (resp %+v)", status, tt.want, resp)
			}
			if tt.want == http.StatusBadRequest && !hasField(resp.Errors, "numberOfTrainees") {
				t.Errorf("errors = %+v, want numberOfTrainees", resp.Errors)
			}
		})
	}
}

func TestTraining_SecondSendFails(t *testing.T) {
	sender := &recordingSender{failFor: "sam@beanthere.com"}
	app := newTestApp(t, sender)

	status, resp := do(t, app, http.MethodPost, "/training-inquiries", mustJSON(t, training(8)))

	if status != http.StatusInternalServerError || resp.Success {
		t.Fatalf("status = %d, resp = %+v", status, resp)
	}
	if !strings.Contains(resp.Message, "1 of 2") {
		t.Errorf("message = %q, want count of failed notifications", resp.Message)
	}
	if sender.count() != 2 {
		t.Errorf("sent %d emails, want both attempted", sender.count())
	}
}

func TestFormSchema(t *testing.T) {
	app := newTestApp(t, &recordingSender{})

	status, resp := do(t, app, http.MethodGet, "/forms/training/schema", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var schema forms.Schema
	if err := json.Unmarshal(resp.Data, &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema.Form != "training" || len(schema.Fields) == 0 {
		t.Errorf("schema = %+v", schema)
	}

	status, _ = do(t, app, http.MethodGet, "/forms/newsletter/schema", "")
	if status != http.StatusNotFound {
		t.Errorf("unknown form status = %d, want 404", status)
	}
}

func TestContentSection(t *testing.T) {
	app := newTestApp(t, &recordingSender{})

	tests := []struct {
		section string
		want    int
	}{
		{section: content.SectionHero, want: http.StatusOK},
		{section: content.SectionServices, want: http.StatusBadGateway},
		{section: content.SectionTimeline, want: http.StatusServiceUnavailable},
		{section: "pricing", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			status, resp := do(t, app, http.MethodGet, "/content/"+tt.section, "")
			if status != tt.want {
				t.Errorf("status = %d, want %d", status, tt.want)
			}
			if resp.Success != (tt.want == http.StatusOK) {
				t.Errorf("success = %v", resp.Success)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, &recordingSender{})

	status, resp := do(t, app, http.MethodGet, "/nope", "")
	if status != http.StatusNotFound || resp.Success {
		t.Errorf("status = %d, resp = %+v", status, resp)
	}
}
