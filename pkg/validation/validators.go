package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Regex patterns
var (
	// local@domain.tld shape; \S only excludes ASCII whitespace
	leadEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("lead_email", LeadEmail)
}

// LeadEmail validates the minimal local-part@domain.tld shape the contact form accepts
func LeadEmail(fl validator.FieldLevel) bool {
	return IsLeadEmail(fl.Field().String())
}

// IsLeadEmail reports whether s looks like an email address. Any Unicode
// space rejects the value, matching the notblank check.
func IsLeadEmail(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) < 0 && leadEmailRegex.MatchString(s)
}
