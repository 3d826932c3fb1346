package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("form session not found")
	ErrUnknownField    = errors.New("unknown form field")
)

// Field names a contact form input
type Field string

const (
	FieldName     Field = "name"
	FieldCompany  Field = "company"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldInterest Field = "interest"
	FieldMessage  Field = "message"
	FieldSource   Field = "source"
)

// Fields lists every contact form input in display order
var Fields = []Field{
	FieldName,
	FieldCompany,
	FieldEmail,
	FieldPhone,
	FieldInterest,
	FieldMessage,
	FieldSource,
}

// ParseField resolves a raw field name
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Interest is the "I'm interested in" selection
type Interest string

const (
	InterestDemo        Interest = "nymblsense-demo"
	InterestCustomAI    Interest = "custom-ai"
	InterestPartnership Interest = "partnership"
	InterestOther       Interest = "other"
)

// Source is the "How did you hear about us?" selection
type Source string

const (
	SourceGoogle   Source = "google"
	SourceLinkedIn Source = "linkedin"
	SourceReferral Source = "referral"
	SourceContent  Source = "content"
	SourceEvent    Source = "event"
	SourceOther    Source = "other"
)

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var InterestOptions = []Option{
	{Value: string(InterestDemo), Label: "NymbleSense Demo"},
	{Value: string(InterestCustomAI), Label: "Custom AI Solutions"},
	{Value: string(InterestPartnership), Label: "General Partnership"},
	{Value: string(InterestOther), Label: "Other"},
}

var SourceOptions = []Option{
	{Value: string(SourceGoogle), Label: "Google Search"},
	{Value: string(SourceLinkedIn), Label: "LinkedIn"},
	{Value: string(SourceReferral), Label: "Referral"},
	{Value: string(SourceContent), Label: "Blog/Content"},
	{Value: string(SourceEvent), Label: "Event/Conference"},
	{Value: string(SourceOther), Label: "Other"},
}

// ContactForm holds the contact form values. The validate tags are the single
// rule table used for both full and per-field validation.
type ContactForm struct {
	Name     string   `json:"name" form:"name" validate:"notblank"`
	Company  string   `json:"company" form:"company" validate:"notblank"`
	Email    string   `json:"email" form:"email" validate:"notblank,lead_email"`
	Phone    string   `json:"phone" form:"phone"`
	Interest Interest `json:"interest" form:"interest" validate:"required,oneof=nymblsense-demo custom-ai partnership other"`
	Message  string   `json:"message" form:"message"`
	Source   Source   `json:"source" form:"source"`
}

// Get returns the value of a field
func (f ContactForm) Get(field Field) (string, bool) {
	switch field {
	case FieldName:
		return f.Name, true
	case FieldCompany:
		return f.Company, true
	case FieldEmail:
		return f.Email, true
	case FieldPhone:
		return f.Phone, true
	case FieldInterest:
		return string(f.Interest), true
	case FieldMessage:
		return f.Message, true
	case FieldSource:
		return string(f.Source), true
	}
	return "", false
}

// Set stores value verbatim. Returns false for unknown fields.
func (f *ContactForm) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldCompany:
		f.Company = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldInterest:
		f.Interest = Interest(value)
	case FieldMessage:
		f.Message = value
	case FieldSource:
		f.Source = Source(value)
	default:
		return false
	}
	return true
}

// Values returns the form as a field map
func (f ContactForm) Values() map[Field]string {
	out := make(map[Field]string, len(Fields))
	for _, field := range Fields {
		out[field], _ = f.Get(field)
	}
	return out
}

// ErrorKind classifies a validation failure
type ErrorKind string

const (
	ErrorRequired      ErrorKind = "required"
	ErrorInvalidFormat ErrorKind = "invalid_format"
)

// ValidationError is attached to a single field
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// FieldErrors holds an entry only for fields that failed validation
type FieldErrors map[Field]ValidationError

func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// Messages flattens the errors to field -> message for rendering
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for k, v := range fe {
		out[string(k)] = v.Message
	}
	return out
}

// SubmissionStatus is the lifecycle stage of a form
type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSubmitted  SubmissionStatus = "submitted"
	StatusFailed     SubmissionStatus = "failed"
)

// SubmissionState carries the failure reason when Status is StatusFailed
type SubmissionState struct {
	Status SubmissionStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
}

// TransportFailure is returned by a LeadTransport that could not deliver a lead
type TransportFailure struct {
	Reason string
}

func (e *TransportFailure) Error() string {
	return "lead transport failed: " + e.Reason
}

// SubmitOutcome reports what a Submit call did
type SubmitOutcome string

const (
	OutcomeSubmitted        SubmitOutcome = "submitted"
	OutcomeInvalid          SubmitOutcome = "invalid"
	OutcomeFailed           SubmitOutcome = "failed"
	OutcomeInFlight         SubmitOutcome = "in_flight"
	OutcomeAlreadySubmitted SubmitOutcome = "already_submitted"
)

// SubmissionResult is returned by Submit. Err is set only for OutcomeFailed.
type SubmissionResult struct {
	Outcome SubmitOutcome
	Errors  FieldErrors
	Err     error
}

// FormSnapshot is a read-only copy of a form for rendering
type FormSnapshot struct {
	Fields ContactForm     `json:"fields"`
	Errors FieldErrors     `json:"errors"`
	State  SubmissionState `json:"state"`
}

// LeadTransport delivers a submitted form
type LeadTransport interface {
	SubmitLead(ctx context.Context, form ContactForm) error
}

// FormController owns one contact form instance
type FormController interface {
	UpdateField(field Field, value string)
	Validate() (bool, FieldErrors)
	Submit(ctx context.Context) SubmissionResult
	Reset()
	Snapshot() FormSnapshot
}

// FormSessionRepository keeps one FormController per visitor session
type FormSessionRepository interface {
	Create(ctx context.Context) (string, FormController, error)
	Get(ctx context.Context, id string) (FormController, error)
	// Sweep evicts sessions idle longer than the TTL and returns how many were removed
	Sweep(ctx context.Context) int
	Len() int
}

// ContactUsecase defines the contact form operations per visitor session
type ContactUsecase interface {
	// OpenSession returns id when it names a live session, otherwise a new session id
	OpenSession(ctx context.Context, id string) (string, error)
	Form(ctx context.Context, sessionID string) (FormSnapshot, error)
	UpdateFields(ctx context.Context, sessionID string, values map[Field]string) (FormSnapshot, error)
	Submit(ctx context.Context, sessionID string) (SubmissionResult, FormSnapshot, error)
	Reset(ctx context.Context, sessionID string) (FormSnapshot, error)
}
