package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"nymble-website/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		out, err := execute(t, "validate",
			"--name", "Jane Doe", "--company", "Acme",
			"--email", "jane@acme.io", "--interest", "custom-ai")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("lists each invalid field", func(t *testing.T) {
		out, err := execute(t, "validate", "--name", "Jane", "--email", "a@b")
		require.ErrorIs(t, err, errInvalidForm)
		assert.Contains(t, out, "company")
		assert.Contains(t, out, "Please enter a valid email address")
		assert.NotContains(t, out, "Name is required")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, "validate", "--json", "--name", "Jane", "--company", "Acme", "--interest", "other")
		require.ErrorIs(t, err, errInvalidForm)

		start := bytes.IndexByte([]byte(out), '{')
		require.GreaterOrEqual(t, start, 0)
		var errs domain.FieldErrors
		require.NoError(t, json.NewDecoder(bytes.NewReader([]byte(out[start:]))).Decode(&errs))
		require.Len(t, errs, 1)
		assert.Equal(t, domain.ErrorRequired, errs[domain.FieldEmail].Kind)
	})
}
