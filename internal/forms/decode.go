package forms

import (
	"encoding/json"
	"errors"
	"reflect"
)

// ErrMalformed reports a body that is not a JSON object at all.
var ErrMalformed = errors.New("malformed request body")

// Decode unmarshals body into form, a pointer to one of the form structs,
// with the given decoder. A value of the wrong JSON type becomes a
// *ValidationError on that field. Syntax errors return ErrMalformed.
func Decode(unmarshal func([]byte, any) error, body []byte, form any) error {
	err := unmarshal(body, form)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return &ValidationError{Errors: []FieldError{{
			Field:   ute.Field,
			Message: typeMessage(form, ute),
		}}}
	}
	return ErrMalformed
}

func typeMessage(form any, ute *json.UnmarshalTypeError) string {
	label := ute.Field
	if f, ok := fieldByJSONName(reflect.TypeOf(form), ute.Field); ok {
		label = labelOf(f)
	}

	t := ute.Type
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return label + " is invalid"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return label + " must be a number"
	case reflect.Bool:
		return label + " must be true or false"
	case reflect.String:
		return label + " must be text"
	default:
		return label + " is invalid"
	}
}

func fieldByJSONName(t reflect.Type, name string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); jsonName(f) == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
