// Package schema validates raw form payloads against declarative field
// contracts and coerces them into request values.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

type Kind int

const (
	String Kind = iota
	Integer
	Money
	Enum
	Date
	Timestamp
)

const (
	DATE_LAYOUT      = "2006-01-02"
	TIMESTAMP_LAYOUT = "2006-01-02 15:04:05"
)

var (
	MaxMoney = decimal.RequireFromString("99999999.99")
	MinMoney = MaxMoney.Neg()
)

// Field declares one form field. Checks run in this order and stop at the
// first violation: required, exact length, min/max length, pattern, enum
// membership, kind parsing, numeric range.
type Field struct {
	Name     string
	Label    string
	Required bool
	Kind     Kind

	Length  int
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
	Values  []string
	Min     *decimal.Decimal
	Max     *decimal.Decimal

	// Message replaces every generated message except "is required".
	Message   string
	Normalize func(string) string
	// Raw keeps surrounding whitespace, which is significant in passwords.
	Raw bool
}

// Check is a cross-field rule over the coerced values. It returns one entry
// per offending field, or nothing when the values are acceptable.
type Check func(values map[string]any) Errors

type Schema struct {
	Name   string
	Fields []Field
	Checks []Check
}

// Errors maps field name to a human-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks every field and returns either the coerced values or the
// collected errors, never both. Empty optional fields are left out of the
// coerced values.
func (s Schema) Validate(input map[string]any) (map[string]any, Errors) {
	values := make(map[string]any, len(s.Fields))
	errs := Errors{}

	for _, f := range s.Fields {
		raw, ok := rawString(input[f.Name], !f.Raw)
		if !ok {
			errs[f.Name] = f.message(fmt.Sprintf("%s is invalid", f.label()))
			continue
		}
		if f.Normalize != nil {
			raw = f.Normalize(raw)
		}
		if raw == "" {
			if f.Required {
				errs[f.Name] = fmt.Sprintf("%s is required", f.label())
			}
			continue
		}
		value, msg := f.coerce(raw)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		values[f.Name] = value
	}

	for _, check := range s.Checks {
		for field, msg := range check(values) {
			if _, exists := errs[field]; !exists {
				errs[field] = msg
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// Decode validates input and decodes the coerced values into out, a pointer
// to a request struct whose json tags name the fields. A validation failure
// is returned as Errors.
func (s Schema) Decode(input map[string]any, out any) error {
	values, errs := s.Validate(input)
	if errs != nil {
		return errs
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to build %s decoder: %w", s.Name, err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.Name, err)
	}
	return nil
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) message(generated string) string {
	if f.Message != "" {
		return f.Message
	}
	return generated
}

func (f Field) coerce(raw string) (any, string) {
	length := utf8.RuneCountInString(raw)
	if f.Length > 0 && length != f.Length {
		return nil, f.message(fmt.Sprintf("%s must be exactly %d characters", f.label(), f.Length))
	}
	if f.MinLen > 0 && length < f.MinLen {
		return nil, f.message(fmt.Sprintf("%s must be at least %d characters", f.label(), f.MinLen))
	}
	if f.MaxLen > 0 && length > f.MaxLen {
		return nil, f.message(fmt.Sprintf("%s must be at most %d characters", f.label(), f.MaxLen))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(raw) {
		return nil, f.message(fmt.Sprintf("%s has an invalid format", f.label()))
	}

	switch f.Kind {
	case Enum:
		for _, allowed := range f.Values {
			if raw == allowed {
				return raw, ""
			}
		}
		return nil, f.message(fmt.Sprintf("%s must be one of %s", f.label(), strings.Join(f.Values, ", ")))

	case Integer:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, f.message(fmt.Sprintf("%s must be a whole number", f.label()))
		}
		if msg := f.checkRange(decimal.NewFromInt(n), nil, nil); msg != "" {
			return nil, msg
		}
		return n, ""

	case Money:
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, f.message(fmt.Sprintf("%s must be a number", f.label()))
		}
		if !amount.Equal(amount.Round(2)) {
			return nil, f.message(fmt.Sprintf("%s must have at most 2 decimal places", f.label()))
		}
		if msg := f.checkRange(amount, &MinMoney, &MaxMoney); msg != "" {
			return nil, msg
		}
		return amount, ""

	case Date:
		if _, err := time.Parse(DATE_LAYOUT, raw); err != nil {
			return nil, f.message(fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", f.label()))
		}
		return raw, ""

	case Timestamp:
		for _, layout := range []string{TIMESTAMP_LAYOUT, "2006-01-02T15:04:05", time.RFC3339, DATE_LAYOUT} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts.UTC().Format(TIMESTAMP_LAYOUT), ""
			}
		}
		return nil, f.message(fmt.Sprintf("%s must be a valid timestamp (YYYY-MM-DD HH:MM:SS)", f.label()))
	}

	return raw, ""
}

func (f Field) checkRange(n decimal.Decimal, defaultMin *decimal.Decimal, defaultMax *decimal.Decimal) string {
	min, max := f.Min, f.Max
	if min == nil {
		min = defaultMin
	}
	if max == nil {
		max = defaultMax
	}
	switch {
	case min != nil && max != nil && (n.LessThan(*min) || n.GreaterThan(*max)):
		return f.message(fmt.Sprintf("%s must be between %s and %s", f.label(), min.String(), max.String()))
	case min != nil && n.LessThan(*min):
		return f.message(fmt.Sprintf("%s must be at least %s", f.label(), min.String()))
	case max != nil && n.GreaterThan(*max):
		return f.message(fmt.Sprintf("%s must be at most %s", f.label(), max.String()))
	}
	return ""
}

// rawString turns a decoded form or JSON value into its text form, trimmed
// unless trim is false. Composite values are rejected.
func rawString(v any, trim bool) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", true
	case string:
		if !trim {
			return value, true
		}
		return strings.TrimSpace(value), true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case int32:
		return strconv.FormatInt(int64(value), 10), true
	case decimal.Decimal:
		return value.String(), true
	case fmt.Stringer:
		if !trim {
			return value.String(), true
		}
		return strings.TrimSpace(value.String()), true
	}
	return "", false
}

func bound(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
