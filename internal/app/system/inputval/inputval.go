// internal/app/system/inputval/inputval.go

// Package inputval validates request payload structs declared with
// `validate` struct tags and returns the per-field messages the API exposes
// in the {message, errors} envelope.
//
// Message texts mirror the dashboard's client-side schema so both sides of
// the product report validation failures identically
// ("Minimum 5 characters.", "Invalid email.", ...).
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

func setup() {
	validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	// Error messages name fields by their JSON tag, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerTranslation("required", "{0} is required.", func(t ut.Translator, fe validator.FieldError) string {
		s, _ := t.T("required", fe.Field())
		return s
	})
	registerTranslation("required_if", "{0} is required.", func(t ut.Translator, fe validator.FieldError) string {
		s, _ := t.T("required_if", fe.Field())
		return s
	})
	registerTranslation("min", "Minimum {0} characters.", func(t ut.Translator, fe validator.FieldError) string {
		s, _ := t.T("min", fe.Param())
		return s
	})
	registerTranslation("email", "Invalid email.", func(t ut.Translator, fe validator.FieldError) string {
		s, _ := t.T("email")
		return s
	})
	registerTranslation("oneof", "Invalid {0}.", func(t ut.Translator, fe validator.FieldError) string {
		s, _ := t.T("oneof", fe.Field())
		return s
	})
}

func registerTranslation(tag, text string, fn validator.TranslationFunc) {
	_ = validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		fn,
	)
}

// Result carries the translated messages from one Validate call.
type Result struct {
	errs []string
}

// HasErrors reports whether validation failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// Messages returns the per-field messages in field declaration order.
func (r Result) Messages() []string { return r.errs }

// Validate checks v against its `validate` struct tags.
func Validate(v any) Result {
	once.Do(setup)

	err := validate.Struct(v)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{errs: []string{err.Error()}}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return Result{errs: msgs}
}
