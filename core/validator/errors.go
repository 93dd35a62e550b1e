package validator

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

type fieldErrorImpl struct {
	fieldError  validator.FieldError
	message     string
	translators map[string]ut.Translator
}

func (fe *fieldErrorImpl) Field() string   { return fe.fieldError.Field() }
func (fe *fieldErrorImpl) Tag() string     { return fe.fieldError.Tag() }
func (fe *fieldErrorImpl) Value() any      { return fe.fieldError.Value() }
func (fe *fieldErrorImpl) Message() string { return fe.message }

// Translate renders the message in lang, falling back to the default message.
func (fe *fieldErrorImpl) Translate(lang string) string {
	if trans, ok := fe.translators[lang]; ok {
		return fe.fieldError.Translate(trans)
	}
	return fe.message
}

// HasFieldError reports whether err contains a failure for field.
func HasFieldError(err error, field string) bool {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors() {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
