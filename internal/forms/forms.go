// Package forms declares the three public inquiry forms once, as tagged
// structs. The same declaration drives server-side validation and the
// schema description served to the client form.
package forms

import "strings"

const (
	FormBooking  = "booking"
	FormContact  = "contact"
	FormTraining = "training"
)

// Enumerations shared with the client form.
var (
	Services        = []string{"bridal", "special-event", "editorial", "photoshoot", "lesson"}
	PreferredTimes  = []string{"morning", "afternoon", "evening"}
	Categories      = []string{"general", "makeup", "barista-training", "collaboration", "other"}
	TrainingTypes   = []string{"individual", "group", "corporate"}
	TrainingModules = []string{"espresso-fundamentals", "milk-and-latte-art", "brew-methods", "cafe-workflow", "full-certification"}
	Budgets         = []string{"under-500", "500-1000", "1000-2500", "2500-plus"}
)

type BookingRequest struct {
	Name            string `json:"name" label:"Name" validate:"required,min=2,max=100"`
	Email           string `json:"email" label:"Email" validate:"required,email"`
	Phone           string `json:"phone" label:"Phone number" validate:"required,phone"`
	Service         string `json:"service" label:"Service" validate:"required,oneof=bridal special-event editorial photoshoot lesson"`
	PreferredDate   string `json:"preferredDate" label:"Preferred date" validate:"required,isodate,notpast"`
	PreferredTime   string `json:"preferredTime" label:"Preferred time" validate:"required,oneof=morning afternoon evening"`
	SpecialRequests string `json:"specialRequests,omitempty" label:"Special requests" validate:"max=1000"`
	AgreeToTerms    bool   `json:"agreeToTerms" label:"Terms" validate:"required"`
}

type ContactMessage struct {
	Name     string `json:"name" label:"Name" validate:"required,min=2,max=100"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" label:"Phone number" validate:"omitempty,phone"`
	Subject  string `json:"subject" label:"Subject" validate:"required,min=2,max=200"`
	Category string `json:"category,omitempty" label:"Category" validate:"omitempty,oneof=general makeup barista-training collaboration other"`
	Message  string `json:"message" label:"Message" validate:"required,min=10,max=5000"`
}

type TrainingInquiry struct {
	CompanyName      string `json:"companyName" label:"Company name" validate:"required,min=2,max=150"`
	ContactName      string `json:"contactName" label:"Contact name" validate:"required,min=2,max=100"`
	ContactEmail     string `json:"contactEmail" label:"Contact email" validate:"required,email"`
	ContactPhone     string `json:"contactPhone" label:"Contact phone" validate:"required,phone"`
	TrainingType     string `json:"trainingType" label:"Training type" validate:"required,oneof=individual group corporate"`
	NumberOfTrainees *int   `json:"numberOfTrainees" label:"Number of trainees" validate:"required,min=1,max=50"`
	TrainingModule   string `json:"trainingModule,omitempty" label:"Training module" validate:"omitempty,oneof=espresso-fundamentals milk-and-latte-art brew-methods cafe-workflow full-certification"`
	PreferredDates   string `json:"preferredDates" label:"Preferred dates" validate:"required,min=1,max=500"`
	Message          string `json:"message" label:"Message" validate:"required,min=10,max=5000"`
	Budget           string `json:"budget,omitempty" label:"Budget" validate:"omitempty,oneof=under-500 500-1000 1000-2500 2500-plus"`
	ReferralSource   string `json:"referralSource,omitempty" label:"Referral source" validate:"max=200"`
}

// Trainees returns the trainee count, zero when absent.
func (t TrainingInquiry) Trainees() int {
	if t.NumberOfTrainees == nil {
		return 0
	}
	return *t.NumberOfTrainees
}

// Normalize trims surrounding whitespace so length rules see what the user meant.
func (b *BookingRequest) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Service = strings.TrimSpace(b.Service)
	b.PreferredDate = strings.TrimSpace(b.PreferredDate)
	b.PreferredTime = strings.TrimSpace(b.PreferredTime)
	b.SpecialRequests = strings.TrimSpace(b.SpecialRequests)
}

func (c *ContactMessage) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Category = strings.TrimSpace(c.Category)
	c.Message = strings.TrimSpace(c.Message)
}

func (t *TrainingInquiry) Normalize() {
	t.CompanyName = strings.TrimSpace(t.CompanyName)
	t.ContactName = strings.TrimSpace(t.ContactName)
	t.ContactEmail = strings.TrimSpace(t.ContactEmail)
	t.ContactPhone = strings.TrimSpace(t.ContactPhone)
	t.TrainingType = strings.TrimSpace(t.TrainingType)
	t.TrainingModule = strings.TrimSpace(t.TrainingModule)
	t.PreferredDates = strings.TrimSpace(t.PreferredDates)
	t.Message = strings.TrimSpace(t.Message)
	t.Budget = strings.TrimSpace(t.Budget)
	t.ReferralSource = strings.TrimSpace(t.ReferralSource)
}

// Lookup returns a zero value of the named form, or false.
func Lookup(name string) (any, bool) {
	switch name {
	case FormBooking:
		return BookingRequest{}, true
	case FormContact:
		return ContactMessage{}, true
	case FormTraining:
		return TrainingInquiry{}, true
	}
	return nil, false
}

// Names lists the published forms in a stable order.
func Names() []string {
	return []string{FormBooking, FormContact, FormTraining}
}
