package options

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
)

// Type is the value type of an option.
type Type int

const (
	// TypeStr is a free-form string option.
	TypeStr Type = iota
	// TypeInt is an integer option.
	TypeInt
	// TypeBool is a boolean option.
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	default:
		return "str"
	}
}

// Option describes one writer option. Disabled options are accepted but
// have no effect.
type Option struct {
	Name     string
	Type     Type
	Comment  string
	Disabled bool
}

// Schema is the ordered option list of a writer.
type Schema []Option

// Lookup finds an option by name.
func (s Schema) Lookup(name string) (Option, bool) {
	for _, o := range s {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Validate checks that every value names a known option and parses as the
// option's type. An empty value is accepted and means the default.
func (s Schema) Validate(values Values) error {
	for name, raw := range values {
		opt, ok := s.Lookup(name)
		if !ok {
			return errors.NewNotFound("write option", name)
		}
		if err := checkType(opt, raw); err != nil {
			return err
		}
	}
	return nil
}

func checkType(opt Option, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	switch opt.Type {
	case TypeInt:
		if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			return &errors.ValidationError{Field: opt.Name, Value: raw, Message: "expected an integer", Err: err}
		}
	case TypeBool:
		if _, err := parseBool(raw); err != nil {
			return &errors.ValidationError{Field: opt.Name, Value: raw, Message: "expected a boolean", Err: err}
		}
	}
	return nil
}

// Int returns the integer value of name, or def when unset.
func (v Values) Int(name string, def int) (int, error) {
	raw, ok := v[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def, &errors.ValidationError{Field: name, Value: raw, Message: "expected an integer", Err: err}
	}
	return n, nil
}

// String returns the value of name, or def when unset.
func (v Values) String(name, def string) string {
	if raw, ok := v[name]; ok {
		return raw
	}
	return def
}

// Bool returns the boolean value of name, or def when unset.
func (v Values) Bool(name string, def bool) (bool, error) {
	raw, ok := v[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	b, err := parseBool(raw)
	if err != nil {
		return def, &errors.ValidationError{Field: name, Value: raw, Message: "expected a boolean", Err: err}
	}
	return b, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}
