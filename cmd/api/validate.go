package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"nymble-website/internal/contactform"
	"nymble-website/internal/domain"

	"github.com/spf13/cobra"
)

var errInvalidForm = errors.New("contact form is invalid")

func newValidateCmd() *cobra.Command {
	var asJSON bool
	values := make(map[domain.Field]*string, len(domain.Fields))

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check contact form values against the form's rules",
		Example: `  api validate --name "Jane Doe" --company Acme --email jane@acme.io --interest custom-ai
  api validate --email not-an-email --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var form domain.ContactForm
			for _, field := range domain.Fields {
				form.Set(field, *values[field])
			}
			return runValidate(cmd, form, asJSON)
		},
	}

	for _, field := range domain.Fields {
		values[field] = cmd.Flags().String(string(field), "", fmt.Sprintf("%s field value", field))
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the field errors as JSON")
	return cmd
}

func runValidate(cmd *cobra.Command, form domain.ContactForm, asJSON bool) error {
	valid, errs := contactform.Validate(form)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(errs); err != nil {
			return err
		}
	} else if valid {
		fmt.Fprintln(out, "ok")
	} else {
		for _, field := range domain.Fields {
			if e, ok := errs[field]; ok {
				fmt.Fprintf(out, "%-9s %-15s %s\n", field, e.Kind, e.Message)
			}
		}
	}

	if !valid {
		return errInvalidForm
	}
	return nil
}
