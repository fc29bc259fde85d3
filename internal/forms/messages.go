package forms

import (
	"fmt"
	"reflect"
	"strings"
)

// overrides replace the generic wording for specific field rules.
var overrides = map[string]string{
	"agreeToTerms.required":     "You must agree to the terms and conditions",
	"preferredDate.notpast":     "Preferred date cannot be in the past",
	"numberOfTrainees.min":      "At least 1 trainee is required",
	"numberOfTrainees.max":      "Maximum 50 trainees per session",
	"preferredDates.min":        "Please let us know your preferred dates",
	"contactEmail.email":        "Please enter a valid contact email address",
	"contactPhone.phone":        "Please enter a valid contact phone number",
	"numberOfTrainees.required": "Number of trainees is required",
}

// message renders the human-readable text for one rule of one field.
func message(field, label, tag, param string, kind reflect.Kind) string {
	if m, ok := overrides[field+"."+tag]; ok {
		return m
	}

	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "isodate":
		return label + " must be a valid date (YYYY-MM-DD)"
	case "notpast":
		return label + " cannot be in the past"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "min":
		if isNumeric(kind) {
			return fmt.Sprintf("%s must be at least %s", label, param)
		}
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		if isNumeric(kind) {
			return fmt.Sprintf("%s must be at most %s", label, param)
		}
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	}
	return label + " is invalid"
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
