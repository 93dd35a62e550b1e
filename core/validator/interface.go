package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs tagged with `validate:"..."`.
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	// GetValidator exposes the go-playground instance for custom rules.
	GetValidator() *validator.Validate
}

// ValidationErrors is returned when one or more fields fail validation.
type ValidationErrors interface {
	error
	Errors() []FieldError
}

// FieldError describes a single failed field.
type FieldError interface {
	Field() string
	Tag() string
	Value() any
	Message() string
	Translate(lang string) string
}

// ValidationOption configures a validator
type ValidationOption func(*validatorImpl)

// WithTagName sets the struct tag read for rules (default "validate").
func WithTagName(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithDefaultLang picks the language used for Error() messages.
func WithDefaultLang(lang string) ValidationOption {
	return func(v *validatorImpl) {
		v.defaultLang = lang
	}
}
