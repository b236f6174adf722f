package reservation

import "strings"

type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violated field of a request, so the caller
// can surface the full list instead of the first failure.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

type Validation struct {
	violations []FieldViolation
}

func NewValidation() *Validation {
	return &Validation{}
}

func (v *Validation) Add(field, reason string) {
	v.violations = append(v.violations, FieldViolation{Field: field, Reason: reason})
}

func (v *Validation) Err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.violations}
}
