package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"expensetracker/internal/core"
)

// ValidationError lists the rejected fields with a readable message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validator wraps go-playground/validator with the English translations and
// the expense-specific tags.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// customTag is a validation tag with its English message.
type customTag struct {
	tag string
	fn  validator.Func
	msg string
}

var expenseTags = []customTag{
	{"notblank", notBlank, "{0} must not be blank"},
	{"amount", validAmount, "{0} must be a positive amount"},
	{"category", validCategory, "{0} must be one of " + strings.Join(core.CategoryIDs(), ", ")},
}

// NewValidator builds the expense validator. It panics if the tags cannot be
// registered, which only happens on a programming error.
func NewValidator() *Validator {
	v, err := newValidator(expenseTags)
	if err != nil {
		panic("services: " + err.Error())
	}
	return v
}

func newValidator(tags []customTag) (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	eng := en.New()
	uni := ut.New(eng, eng)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("english translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	for _, c := range tags {
		if err := validate.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, fmt.Errorf("register tag %q: %w", c.tag, err)
		}
		msg := c.msg
		tag := c.tag
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(tag, fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			})
		if err != nil {
			return nil, fmt.Errorf("register translation %q: %w", c.tag, err)
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and converts failures to *ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fe.Translate(v.trans)
	}
	return out
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validAmount(fl validator.FieldLevel) bool {
	cents, err := core.ParseDecimalToCents(fl.Field().String())
	return err == nil && cents > 0
}

func validCategory(fl validator.FieldLevel) bool {
	_, ok := core.CategoryByID(fl.Field().String())
	return ok
}
