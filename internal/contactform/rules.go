package contactform

import (
	"reflect"
	"strings"

	"nymble-website/internal/domain"
	"nymble-website/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// structFields maps form fields to the ContactForm struct field names that
// StructPartial expects.
var structFields = map[domain.Field]string{
	domain.FieldName:     "Name",
	domain.FieldCompany:  "Company",
	domain.FieldEmail:    "Email",
	domain.FieldPhone:    "Phone",
	domain.FieldInterest: "Interest",
	domain.FieldMessage:  "Message",
	domain.FieldSource:   "Source",
}

// Rules runs the validate tags declared on domain.ContactForm
type Rules struct {
	validate *validator.Validate
}

// NewRules builds a validator with the contact form rules registered
func NewRules() *Rules {
	v := validator.New()
	validation.RegisterValidators(v)

	// Report json names so errors key on domain.Field values
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Rules{validate: v}
}

var defaultRules = NewRules()

// Validate checks every field of form against the default rules
func Validate(form domain.ContactForm) (bool, domain.FieldErrors) {
	return defaultRules.Validate(form)
}

// Validate checks every field of form
func (r *Rules) Validate(form domain.ContactForm) (bool, domain.FieldErrors) {
	errs := r.collect(r.validate.Struct(form))
	return len(errs) == 0, errs
}

// ValidateField checks a single field. ok is true when the field passes.
func (r *Rules) ValidateField(form domain.ContactForm, field domain.Field) (domain.ValidationError, bool) {
	name, known := structFields[field]
	if !known {
		return domain.ValidationError{}, true
	}

	errs := r.collect(r.validate.StructPartial(form, name))
	fe, failed := errs[field]
	return fe, !failed
}

func (r *Rules) collect(err error) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs
	}

	for _, e := range validationErrors {
		errs[domain.Field(e.Field())] = domain.ValidationError{
			Kind:    errorKind(e.Tag()),
			Message: validation.FormatFieldError(e),
		}
	}
	return errs
}

func errorKind(tag string) domain.ErrorKind {
	switch tag {
	case "required", "notblank":
		return domain.ErrorRequired
	default:
		return domain.ErrorInvalidFormat
	}
}
