package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lead struct {
	Name     string `validate:"notblank"`
	Email    string `validate:"notblank,lead_email"`
	Interest string `validate:"required,oneof=custom-ai partnership"`
}

func TestIsLeadEmail(t *testing.T) {
	tests := map[string]bool{
		"a@b.c":               true,
		"jane.doe@acme.io":    true,
		"not-an-email":        false,
		"a@b":                 false,
		"a b@c.d":             false,
		"":                    false,
		"a\vb@c.d":            false,
		"a\u00a0b@c.d":        false,
		"a@b\u2003.c":         false,
		"jane@acme.com\u0085": false,
		"jane@acme.com\u3000": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsLeadEmail(in), in)
	}
}

func messages(t *testing.T, v *validator.Validate, l lead) []string {
	t.Helper()
	err := v.Struct(l)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FormatFieldError(e))
	}
	return out
}

func TestFormatFieldError(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	assert.ElementsMatch(t, []string{
		"Name is required",
		"Please enter a valid email address",
		"Interest must be one of: Custom AI Solutions, General Partnership",
	}, messages(t, v, lead{Name: "   ", Email: "jane@", Interest: "sales"}))
}

func TestNotBlankAndLeadEmailAgreeOnUnicodeSpace(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	msgs := messages(t, v, lead{Name: "\u00a0\u00a0", Email: "jane@acme.io\u00a0", Interest: "custom-ai"})
	assert.ElementsMatch(t, []string{
		"Name is required",
		"Please enter a valid email address",
	}, msgs)
}
