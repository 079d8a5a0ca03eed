package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps go-playground/validator with English messages keyed by JSON field names.
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

// New builds a validator that reports fields by their JSON tag names.
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &Validator{validate: v, trans: trans}
}

// Engine exposes the underlying validator for services that validate structs directly.
func (v *Validator) Engine() *govalidator.Validate {
	return v.validate
}

// Struct validates a struct using its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// TranslateErrors turns a validation error into a map of field name to
// human-readable message. Non-validation errors come back under "detail".
func (v *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(v.trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// fieldPath drops the top-level struct name from the namespace, e.g.
// "QuizRequest.questions[0].text" becomes "questions[0].text".
func fieldPath(fe govalidator.FieldError) string {
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return fe.Field()
}
