// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/danielhkuo/request-desk/models"
)

// phoneRegex accepts xxx-xxx-xxxx with ASCII digits only
var phoneRegex = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

// messages shown next to each rejected field
var messages = map[string]string{
	models.FieldName:       "Must have a name",
	models.FieldEmail:      "Must have an email",
	models.FieldPhone:      "Phone should be in format xxx-xxx-xxxx",
	models.FieldDepartment: "Please select department",
	models.FieldDate:       "please select date of issuing",
	models.FieldSMS:        "Do you prefer SMS notifications?",
}

var validate = newValidator()

// newValidator registers the custom tags used on models.RecordFields and
// reports fields by their form name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	rules := map[string]validator.Func{
		"notblank":   validators.NotBlank,
		"phone":      func(fl validator.FieldLevel) bool { return phoneRegex.MatchString(fl.Field().String()) },
		"maildomain": func(fl validator.FieldLevel) bool { return isMailDomain(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Errors is the ordered list of field errors for a rejected submission
type Errors []models.FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether a field has at least one error
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate checks every field independently. It returns the accepted draft
// or an Errors value listing failures in field declaration order.
func Validate(in models.RecordFields) (models.RecordFields, error) {
	err := validate.Struct(in)
	if err == nil {
		return in, nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return models.RecordFields{}, err
	}

	errs := make(Errors, 0, len(ves))
	for _, fe := range ves {
		errs = append(errs, toFieldError(fe))
	}
	return models.RecordFields{}, errs
}

func toFieldError(fe validator.FieldError) models.FieldError {
	code := models.CodeInvalidFormat
	if fe.Tag() == "notblank" {
		code = models.CodeEmptyField
	}
	return models.FieldError{Field: fe.Field(), Code: code, Message: messages[fe.Field()]}
}

// IsPhone reports whether value matches xxx-xxx-xxxx
func IsPhone(value string) bool {
	return validate.Var(value, "phone") == nil
}

// IsEmail reports whether value is a bare address whose domain is a
// hostname with an alphabetic top-level label.
func IsEmail(value string) bool {
	return validate.Var(value, "email,maildomain") == nil
}

// isMailDomain checks the part after the last @. IP literals, underscores,
// labels starting or ending with '-' and one-letter TLDs are rejected.
func isMailDomain(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	if domain == "" || len(domain) > 253 {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if !isHostLabel(l) {
			return false
		}
	}
	return isTopLevel(labels[len(labels)-1])
}

func isHostLabel(l string) bool {
	if l == "" || len(l) > 63 || l[0] == '-' || l[len(l)-1] == '-' {
		return false
	}
	for _, r := range l {
		if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isTopLevel(l string) bool {
	// punycode
	if lower := strings.ToLower(l); strings.HasPrefix(lower, "xn--") {
		return len(lower) > len("xn--")
	}
	if utf8.RuneCountInString(l) < 2 {
		return false
	}
	for _, r := range l {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
