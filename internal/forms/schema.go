package forms

import (
	"reflect"
	"strconv"
	"strings"
)

// FieldSchema is the client-facing description of one form field.
type FieldSchema struct {
	Name      string            `json:"name"`
	Label     string            `json:"label"`
	Type      string            `json:"type"`
	Format    string            `json:"format,omitempty"`
	Required  bool              `json:"required"`
	MinLength *int              `json:"minLength,omitempty"`
	MaxLength *int              `json:"maxLength,omitempty"`
	Minimum   *int              `json:"minimum,omitempty"`
	Maximum   *int              `json:"maximum,omitempty"`
	Options   []string          `json:"options,omitempty"`
	Messages  map[string]string `json:"messages"`
}

type Schema struct {
	Form   string        `json:"form"`
	Fields []FieldSchema `json:"fields"`
}

// Describe derives the schema of the named form from its validate tags.
func Describe(form string) (Schema, bool) {
	zero, ok := Lookup(form)
	if !ok {
		return Schema{}, false
	}

	t := reflect.TypeOf(zero)
	out := Schema{Form: form, Fields: make([]FieldSchema, 0, t.NumField())}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		kind := ft.Kind()

		fs := FieldSchema{
			Name:     name,
			Label:    labelOf(sf),
			Type:     jsonType(kind),
			Messages: make(map[string]string),
		}

		for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
			tag, param, _ := strings.Cut(rule, "=")
			if tag == "" || tag == "omitempty" {
				continue
			}

			switch tag {
			case "required":
				fs.Required = true
			case "email", "phone":
				fs.Format = tag
			case "isodate":
				fs.Format = "date"
			case "oneof":
				fs.Options = strings.Fields(param)
			case "min", "max":
				n, err := strconv.Atoi(param)
				if err != nil {
					continue
				}
				setBound(&fs, tag, n, isNumeric(kind))
			}

			fs.Messages[tag] = message(name, fs.Label, tag, param, kind)
		}

		out.Fields = append(out.Fields, fs)
	}

	return out, true
}

func setBound(fs *FieldSchema, tag string, n int, numeric bool) {
	switch {
	case tag == "min" && numeric:
		fs.Minimum = &n
	case tag == "max" && numeric:
		fs.Maximum = &n
	case tag == "min":
		fs.MinLength = &n
	default:
		fs.MaxLength = &n
	}
}

func jsonType(k reflect.Kind) string {
	switch {
	case k == reflect.Bool:
		return "boolean"
	case isNumeric(k):
		return "number"
	}
	return "string"
}
