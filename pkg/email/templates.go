package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

const (
	tplBookingAdmin        = "booking_admin"
	tplBookingConfirmation = "booking_confirmation"
	tplContactAdmin        = "contact_admin"
	tplContactAutoReply    = "contact_autoreply"
	tplTrainingAdmin       = "training_admin"
	tplTrainingReceived    = "training_received"
)

var funcs = map[string]any{
	"humanize": Humanize,
	"nl2br":    nl2br,
}

var (
	htmlTemplates = map[string]*htmltemplate.Template{}
	textTemplates = map[string]*texttemplate.Template{}
)

func init() {
	for _, name := range []string{
		tplBookingAdmin, tplBookingConfirmation,
		tplContactAdmin, tplContactAutoReply,
		tplTrainingAdmin, tplTrainingReceived,
	} {
		htmlTemplates[name] = htmltemplate.Must(
			htmltemplate.New("layout.html").Funcs(htmltemplate.FuncMap(funcs)).
				ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"),
		)
		textTemplates[name] = texttemplate.Must(
			texttemplate.New(name+".txt").Funcs(texttemplate.FuncMap(funcs)).
				ParseFS(templateFS, "templates/"+name+".txt"),
		)
	}
}

// Branding is shared by every template.
type Branding struct {
	BusinessName string
	SiteURL      string
	AdminEmail   string
}

type BookingEmailData struct {
	Branding
	ConfirmationNumber string
	Name               string
	Email              string
	Phone              string
	Service            string
	PreferredDate      string
	PreferredTime      string
	SpecialRequests    string
	SubmittedAt        time.Time
}

type ContactEmailData struct {
	Branding
	Name        string
	Email       string
	Phone       string
	Subject     string
	Category    string
	Message     string
	SubmittedAt time.Time
}

type TrainingEmailData struct {
	Branding
	CompanyName      string
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	TrainingType     string
	NumberOfTrainees int
	TrainingModule   string
	PreferredDates   string
	Message          string
	Budget           string
	ReferralSource   string
	SubmittedAt      time.Time
}

// BuildBookingAdminEmail notifies the operator about a new booking request.
func BuildBookingAdminEmail(data BookingEmailData) (Message, error) {
	subject := fmt.Sprintf("New booking request %s: %s (%s)", data.ConfirmationNumber, data.Name, Humanize(data.Service))
	return render(tplBookingAdmin, data, data.AdminEmail, data.Email, subject)
}

// BuildBookingConfirmationEmail tells the client their request was received.
func BuildBookingConfirmationEmail(data BookingEmailData) (Message, error) {
	subject := fmt.Sprintf("Booking request received - %s", data.ConfirmationNumber)
	return render(tplBookingConfirmation, data, data.Email, data.AdminEmail, subject)
}

func BuildContactAdminEmail(data ContactEmailData) (Message, error) {
	subject := fmt.Sprintf("New contact message: %s", data.Subject)
	return render(tplContactAdmin, data, data.AdminEmail, data.Email, subject)
}

func BuildContactAutoReplyEmail(data ContactEmailData) (Message, error) {
	subject := fmt.Sprintf("Thanks for reaching out to %s", data.BusinessName)
	return render(tplContactAutoReply, data, data.Email, data.AdminEmail, subject)
}

func BuildTrainingAdminEmail(data TrainingEmailData) (Message, error) {
	subject := fmt.Sprintf("New training inquiry: %s (%d trainees)", data.CompanyName, data.NumberOfTrainees)
	return render(tplTrainingAdmin, data, data.AdminEmail, data.ContactEmail, subject)
}

func BuildTrainingReceivedEmail(data TrainingEmailData) (Message, error) {
	subject := "Your barista training inquiry has been received"
	return render(tplTrainingReceived, data, data.ContactEmail, data.AdminEmail, subject)
}

func render(name string, data any, to, replyTo, subject string) (Message, error) {
	var html, text bytes.Buffer

	if err := htmlTemplates[name].Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("email: render %s html: %w", name, err)
	}
	if err := textTemplates[name].Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("email: render %s text: %w", name, err)
	}

	return Message{
		To:       []string{to},
		ReplyTo:  replyTo,
		Subject:  subject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

// Humanize turns an enum slug like "special-event" into "Special event".
func Humanize(slug string) string {
	s := strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// nl2br keeps line breaks of free text after escaping.
func nl2br(s string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(s)
	return htmltemplate.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
