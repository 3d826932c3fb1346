package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps field names to the labels shown next to the inputs
var FieldLabels = map[string]string{
	// Contact form fields
	"name":     "Name",
	"company":  "Company",
	"email":    "Email",
	"phone":    "Phone",
	"interest": "Interest",
	"message":  "Message",
	"source":   "How did you hear about us",
}

// enumLabels maps option values to display text
var enumLabels = map[string]string{
	"nymblsense-demo": "NymbleSense Demo",
	"custom-ai":       "Custom AI Solutions",
	"partnership":     "General Partnership",
	"other":           "Other",
}

// FormatFieldError formats a single validation error to a user-friendly message
func FormatFieldError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)

	case "email", "lead_email":
		return "Please enter a valid email address"

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, formatOneOfOptions(param))

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid", label)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	if fieldName == "" {
		return fieldName
	}
	return strings.ToUpper(fieldName[:1]) + fieldName[1:]
}

// formatOneOfOptions formats oneof options for display
func formatOneOfOptions(param string) string {
	options := strings.Fields(param)
	formatted := make([]string, len(options))
	for i, opt := range options {
		if label, ok := enumLabels[opt]; ok {
			formatted[i] = label
			continue
		}
		formatted[i] = opt
	}
	return strings.Join(formatted, ", ")
}
