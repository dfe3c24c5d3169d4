package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput - числовой параметр вне допустимой области
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate - переданная дата не разбирается как YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")
)

// FieldError указывает поле, нарушившее ограничение.
// Разворачивается в ErrInvalidInput или ErrInvalidDate.
type FieldError struct {
	Field  string
	Reason string
	Kind   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func invalidInput(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Kind: ErrInvalidInput}
}

func invalidDate(field, value string) error {
	return &FieldError{
		Field:  field,
		Reason: fmt.Sprintf("дата %q не соответствует формату YYYY-MM-DD", value),
		Kind:   ErrInvalidDate,
	}
}
