package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/gopos/internal/pkg/strcase"
)

const (
	passwordMinLen = 8
	// bcrypt ignores anything past 72 bytes
	passwordMaxLen = 72
)

// ErrTranslatorNotFound indicates the english translator is unavailable.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError maps snake_case field names to a readable message.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator builds a validator with english messages and the custom
// rules used by the account module.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerCustomRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: enTrans}, nil
}

// Validate returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	errV10 := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return errV10
}

// StrongPassword reports whether p is 8-72 characters long and mixes letters
// with at least one digit.
func StrongPassword(p string) bool {
	n := utf8.RuneCountInString(p)
	if n < passwordMinLen || len(p) > passwordMaxLen {
		return false
	}

	var letter, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return letter && digit
}

func registerCustomRules(validate *validator.Validate, enTrans ut.Translator) error {
	rules := []struct {
		tag     string
		message string
		fn      validator.Func
	}{
		{
			tag:     "password",
			message: "{0} must be 8-72 characters and contain letters and digits",
			fn: func(fl validator.FieldLevel) bool {
				p, ok := fl.Field().Interface().(string)
				return ok && StrongPassword(p)
			},
		},
		{
			tag:     "role",
			message: "{0} must be one of Admin, Supplier, Customer or Biller",
			fn: func(fl validator.FieldLevel) bool {
				switch fl.Field().String() {
				case "Admin", "Supplier", "Customer", "Biller":
					return true
				default:
					return false
				}
			},
		},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		message := rule.message
		if err := validate.RegisterTranslation(rule.tag, enTrans,
			func(trans ut.Translator) error {
				return trans.Add(rule.tag, message, false)
			},
			func(trans ut.Translator, fe validator.FieldError) string {
				t, err := trans.T(fe.Tag(), strcase.ToLowerSnake(fe.Field()))
				if err != nil {
					return fe.Error()
				}
				return t
			},
		); err != nil {
			return err
		}
	}

	return nil
}
