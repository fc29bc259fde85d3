package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/glowandgrind/site-api/config"
)

const dateLayout = "2006-01-02"

type Config struct {
	// Timezone decides what "today" means for date rules.
	Timezone string
	// PhoneRegion is used for numbers written without a country code.
	PhoneRegion string
}

func FromCentralConfig(c config.FormsConfig) Config {
	return Config{
		Timezone:    c.Timezone,
		PhoneRegion: c.PhoneRegion,
	}
}

type Option func(*Validator)

// WithClock overrides the time source used by the notpast rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// Validator evaluates the form structs against their validate tags.
type Validator struct {
	v      *validator.Validate
	loc    *time.Location
	region string
	now    func() time.Time
}

func New(cfg Config, opts ...Option) (*Validator, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("forms: invalid timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	fv := &Validator{
		v:      validator.New(validator.WithRequiredStructEnabled()),
		loc:    loc,
		region: strings.ToUpper(cfg.PhoneRegion),
		now:    time.Now,
	}
	for _, o := range opts {
		o(fv)
	}

	fv.v.RegisterTagNameFunc(jsonName)

	rules := map[string]validator.Func{
		"phone":   fv.validPhone,
		"isodate": validISODate,
		"notpast": fv.notPast,
	}
	for tag, fn := range rules {
		if err := fv.v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("forms: register %s: %w", tag, err)
		}
	}

	return fv, nil
}

// Validate checks s and returns a *ValidationError listing every violated rule.
func (fv *Validator) Validate(s any) error {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("forms: validate: %w", err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		label := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			label = labelOf(sf)
		}
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe.Field(), label, fe.Tag(), fe.Param(), fe.Kind()),
		})
	}
	return out
}

// Today returns the current date in the form timezone.
func (fv *Validator) Today() time.Time {
	n := fv.now().In(fv.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, fv.loc)
}

func (fv *Validator) validPhone(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}
	num, err := phonenumbers.Parse(raw, fv.region)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

func (fv *Validator) notPast(fl validator.FieldLevel) bool {
	d, err := time.ParseInLocation(dateLayout, fl.Field().String(), fv.loc)
	if err != nil {
		// isodate reports malformed values
		return true
	}
	return !d.Before(fv.Today())
}

func validISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func labelOf(f reflect.StructField) string {
	if l := f.Tag.Get("label"); l != "" {
		return l
	}
	return f.Name
}

// fieldPath drops the root struct name: "BookingRequest.agreeToTerms" -> "agreeToTerms".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
