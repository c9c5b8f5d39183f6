// Package validate is the single input-validation boundary. Every service
// validates its request records here before touching the store.
package validate

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
	hexColorTag = "hexcolor"
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report json names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(ut.Translator, validator.FieldError) string { return "cannot be blank" },
	)
	_ = validate.RegisterTranslation(hexColorTag, translator,
		func(ut.Translator) error { return nil },
		func(ut.Translator, validator.FieldError) string { return "must be a hex colour like #1A2B3C" },
	)
}

// Struct validates s and returns a field-keyed pkgerrors.Validation error,
// or nil when s is valid.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return pkgerrors.Wrap(pkgerrors.KindValidation, "invalid input", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Translate(translator)
	}
	return pkgerrors.Validation(fields)
}

// Merge adds cross-field failures to an existing validation result.
// It returns nil when both inputs carry no failures.
func Merge(err error, extra map[string]string) error {
	if len(extra) == 0 {
		return err
	}
	if err == nil {
		return pkgerrors.Validation(extra)
	}
	e, ok := pkgerrors.As(err)
	if !ok || e.Kind != pkgerrors.KindValidation {
		return err
	}
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	for k, v := range extra {
		if _, exists := e.Fields[k]; !exists {
			e.Fields[k] = v
		}
	}
	return e
}

// fieldPath drops the top-level struct name: "CreateCohortRequest.end_year" → "end_year".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr:
		if field.IsNil() {
			return true
		}
		return strings.TrimSpace(field.Elem().String()) != ""
	default:
		return true
	}
}
