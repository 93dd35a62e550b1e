// Package validator wraps go-playground/validator with translated error messages.
package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

type validatorImpl struct {
	validator   *validator.Validate
	translators map[string]ut.Translator
	defaultLang string
}

// Validate is the shared instance used by config loading and the request wrapper.
var Validate = New()

func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator:   validator.New(validator.WithRequiredStructEnabled()),
		translators: make(map[string]ut.Translator, 2),
		defaultLang: "en",
	}

	// report json/mapstructure names so messages match what users write in config
	v.validator.RegisterTagNameFunc(fieldName)

	for _, opt := range opts {
		opt(v)
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())
	if trans, ok := uni.GetTranslator("en"); ok {
		v.translators["en"] = trans
		_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
	}
	if trans, ok := uni.GetTranslator("zh"); ok {
		v.translators["zh"] = trans
		_ = zh_translations.RegisterDefaultTranslations(v.validator, trans)
	}

	return v
}

func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.Struct(s))
}

func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.StructCtx(ctx, s))
}

func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

func (v *validatorImpl) translate(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	trans, ok := v.translators[v.defaultLang]
	if !ok {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(errs))
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		fieldErr := &fieldErrorImpl{
			fieldError:  fe,
			message:     fe.Translate(trans),
			translators: v.translators,
		}
		fieldErrors = append(fieldErrors, fieldErr)
		messages = append(messages, fieldErr.message)
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
	}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
