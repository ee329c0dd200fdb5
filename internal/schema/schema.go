package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/arjunvn/shopstack/internal/store"
)

// FieldError is a single structured validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names instead of Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Schema validates untyped input against a declared shape, yielding either a
// normalized document (unknown fields stripped, numbers coerced) or a
// non-empty list of field errors.
type Schema struct {
	factory func() any
}

// New builds a Schema from a factory returning a pointer to the zero shape.
func New(factory func() any) *Schema {
	return &Schema{factory: factory}
}

func (s *Schema) Validate(in store.Document) (store.Document, []FieldError) {
	shape := s.factory()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     shape,
		TagName:    "json",
		DecodeHook: floatToIntHook,
	})
	if err != nil {
		return nil, []FieldError{{Field: "", Message: err.Error()}}
	}
	if err := dec.Decode(map[string]any(in)); err != nil {
		return nil, decodeErrors(err)
	}

	if err := validate.Struct(shape); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, []FieldError{{Field: "", Message: err.Error()}}
		}
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fieldPath(fe), Message: ruleMessage(fe)})
		}
		return nil, out
	}

	return encode(shape)
}

// encode converts the typed shape back into a plain document via a JSON
// round-trip so nested structs and slices come out as maps and []any.
func encode(shape any) (store.Document, []FieldError) {
	raw, err := json.Marshal(shape)
	if err != nil {
		return nil, []FieldError{{Field: "", Message: err.Error()}}
	}
	var out store.Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, []FieldError{{Field: "", Message: err.Error()}}
	}
	return out, nil
}

// floatToIntHook admits JSON numbers into int fields only when they carry no
// fractional part.
func floatToIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}
	f := data.(float64)
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("must be an integer")
	}
	return int(f), nil
}

func decodeErrors(err error) []FieldError {
	merr, ok := err.(*mapstructure.Error)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(merr.Errors))
	for _, msg := range merr.Errors {
		out = append(out, FieldError{Field: quotedField(msg), Message: msg})
	}
	return out
}

// quotedField pulls the 'field' name out of a mapstructure error message.
func quotedField(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// fieldPath strips the root shape name from the namespace, leaving paths like
// "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must have at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
