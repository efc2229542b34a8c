package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// Capacity is the number of records a store may ever hold, active or not.
	Capacity = 100
	// MaxFieldLen bounds Name and Role.
	MaxFieldLen = 49
)

type Employee struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name" validate:"fieldtext"`
	Role   string  `yaml:"role" validate:"fieldtext"`
	Salary float64 `yaml:"salary" validate:"gte=0"`
	Active bool    `yaml:"active"`
}

var validate = newValidator()

// newValidator registers "fieldtext": a required, single-line value of at
// most MaxFieldLen characters. A line break would split the row on disk.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	v.RegisterAlias("fieldtext", fmt.Sprintf("required,max=%d,singleline", MaxFieldLen))
	return v
}

// Validate checks the mutable fields. Over-long text is rejected rather
// than truncated.
func (e *Employee) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating employee: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: strings.ToLower(fe.Field()),
			Rule:  fe.ActualTag(),
			Param: fe.Param(),
		})
	}
	return out
}

// FormatSalary renders a salary with exactly two fractional digits.
func FormatSalary(s float64) string {
	return fmt.Sprintf("%.2f", s)
}

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return fmt.Sprintf("%s is required", f.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f.Field, f.Param)
	case "singleline":
		return fmt.Sprintf("%s must not contain line breaks", f.Field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	default:
		return fmt.Sprintf("%s is invalid", f.Field)
	}
}

// ValidationError is returned when an employee's fields break a rule.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid employee: " + strings.Join(msgs, ", ")
}
