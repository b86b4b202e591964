package accountdelivery

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/naseer6/bankapp/internal/domain"
)

var ibanPattern = regexp.MustCompile(`^NL\d{2}BANK\d{10}$`)

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.IsValidAccountType(t)
	}

	return false
}

// ValidIBAN validates the IBAN format issued by this bank.
var ValidIBAN validator.Func = func(fl validator.FieldLevel) bool {
	if iban, ok := fl.Field().Interface().(string); ok {
		return ibanPattern.MatchString(iban)
	}

	return false
}
