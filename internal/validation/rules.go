// Package validation holds the jellydator/validation rules shared by the seller,
// product and auth inputs.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/storefront/internal/errors"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

// WrapValidationError turns a validation failure into an apperrors.ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength is the rule applied to seller passwords.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

type charClass struct {
	code    string
	message string
	match   func(rune) bool
}

var (
	upperClass   = charClass{"validation_password_uppercase", "an uppercase letter", unicode.IsUpper}
	lowerClass   = charClass{"validation_password_lowercase", "a lowercase letter", unicode.IsLower}
	numberClass  = charClass{"validation_password_number", "a number", unicode.IsNumber}
	specialClass = charClass{"validation_password_special", "a special character", func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}}
)

// Validate implements validation.Rule. The first unmet requirement is reported.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	for _, req := range []struct {
		enabled bool
		class   charClass
	}{
		{p.RequireUpper, upperClass},
		{p.RequireLower, lowerClass},
		{p.RequireNumber, numberClass},
		{p.RequireSpecial, specialClass},
	} {
		if req.enabled && strings.IndexFunc(s, req.class.match) < 0 {
			return validation.NewError(req.class.code, "password must contain at least "+req.class.message)
		}
	}

	return nil
}

// Email checks a basic address shape; deliverability is not verified.
var Email = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Username allows letters, digits, '.', '_' and '-'.
var Username = validation.NewStringRuleWithError(
	usernameRegex.MatchString,
	validation.NewError("validation_username_format", "may only contain letters, digits, '.', '_' and '-'"),
)
