package forms

import "testing"

func findField(s Schema, name string) (FieldSchema, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}

func TestDescribe_Training(t *testing.T) {
	s, ok := Describe(FormTraining)
	if !ok {
		t.Fatal("Describe(training) not found")
	}

	trainees, ok := findField(s, "numberOfTrainees")
	if !ok {
		t.Fatal("numberOfTrainees missing from schema")
	}
	if trainees.Type != "number" || !trainees.Required {
		t.Errorf("numberOfTrainees = %+v, want required number", trainees)
	}
	if trainees.Minimum == nil || *trainees.Minimum != 1 || trainees.Maximum == nil || *trainees.Maximum != 50 {
		t.Errorf("numberOfTrainees bounds = %v..%v, want 1..50", trainees.Minimum, trainees.Maximum)
	}
	if trainees.Messages["max"] != "Maximum 50 trainees per session" {
		t.Errorf("numberOfTrainees max message = %q", trainees.Messages["max"])
	}

	budget, _ := findField(s, "budget")
	if budget.Required {
		t.Error("budget should be optional")
	}
	if len(budget.Options) != len(Budgets) {
		t.Errorf("budget options = %v, want %v", budget.Options, Budgets)
	}
}

func TestDescribe_Booking(t *testing.T) {
	s, ok := Describe(FormBooking)
	if !ok {
		t.Fatal("Describe(booking) not found")
	}

	tests := []struct {
		field    string
		typ      string
		format   string
		required bool
	}{
		{field: "name", typ: "string", required: true},
		{field: "email", typ: "string", format: "email", required: true},
		{field: "phone", typ: "string", format: "phone", required: true},
		{field: "preferredDate", typ: "string", format: "date", required: true},
		{field: "specialRequests", typ: "string"},
		{field: "agreeToTerms", typ: "boolean", required: true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := findField(s, tt.field)
			if !ok {
				t.Fatalf("%s missing from schema", tt.field)
			}
			if f.Type != tt.typ || f.Format != tt.format || f.Required != tt.required {
				t.Errorf("%s = {type:%s format:%s required:%v}, want {%s %s %v}",
					tt.field, f.Type, f.Format, f.Required, tt.typ, tt.format, tt.required)
			}
		})
	}

	name, _ := findField(s, "name")
	if name.MinLength == nil || *name.MinLength != 2 || name.MaxLength == nil || *name.MaxLength != 100 {
		t.Errorf("name length bounds = %v..%v, want 2..100", name.MinLength, name.MaxLength)
	}
}

func TestDescribe_Unknown(t *testing.T) {
	if _, ok := Describe("newsletter"); ok {
		t.Error("Describe(newsletter) should not exist")
	}
}
