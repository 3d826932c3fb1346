// Package contactform implements the contact form state machine:
// Idle -> Submitting -> Submitted | Failed, with Failed able to retry and
// Submitted only left through Reset.
package contactform

import (
	"context"
	"errors"
	"sync"
	"time"

	"nymble-website/internal/domain"
)

// Controller owns the fields, errors and submission state of one form.
// It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	transport  domain.LeadTransport
	rules      *Rules
	timeout    time.Duration
	revalidate bool

	fields domain.ContactForm
	errors domain.FieldErrors
	state  domain.SubmissionState
}

var _ domain.FormController = (*Controller)(nil)

type Option func(*Controller)

// WithTimeout bounds each transport call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// WithRevalidateOnChange re-checks a field that already has an error when it
// is edited, instead of clearing the error until the next submit.
func WithRevalidateOnChange() Option {
	return func(c *Controller) {
		c.revalidate = true
	}
}

// New creates a controller in the Idle state
func New(transport domain.LeadTransport, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		rules:     defaultRules,
		errors:    domain.FieldErrors{},
		state:     domain.SubmissionState{Status: domain.StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField stores value as-is and clears the field's error. Unknown fields
// are ignored. Edits made while a submission is in flight do not reach it.
func (c *Controller) UpdateField(field domain.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fields.Set(field, value) {
		return
	}

	if _, had := c.errors[field]; !had {
		return
	}

	if c.revalidate {
		if fe, ok := c.rules.ValidateField(c.fields, field); !ok {
			c.errors[field] = fe
			return
		}
	}
	delete(c.errors, field)
}

// Field returns the current value of a field
func (c *Controller) Field(field domain.Field) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields.Get(field)
}

// Validate checks the current fields without changing any state
func (c *Controller) Validate() (bool, domain.FieldErrors) {
	c.mu.Lock()
	form := c.fields
	c.mu.Unlock()

	return c.rules.Validate(form)
}

// Submit validates the form and, when valid, hands a snapshot of the fields
// to the transport. Only one submission runs at a time; calls made while one
// is in flight, or after a successful one, return without side effects.
func (c *Controller) Submit(ctx context.Context) domain.SubmissionResult {
	c.mu.Lock()
	switch c.state.Status {
	case domain.StatusSubmitting:
		c.mu.Unlock()
		return domain.SubmissionResult{Outcome: domain.OutcomeInFlight}
	case domain.StatusSubmitted:
		c.mu.Unlock()
		return domain.SubmissionResult{Outcome: domain.OutcomeAlreadySubmitted}
	}

	valid, errs := c.rules.Validate(c.fields)
	if !valid {
		c.errors = errs
		c.mu.Unlock()
		return domain.SubmissionResult{Outcome: domain.OutcomeInvalid, Errors: errs.Clone()}
	}

	c.errors = domain.FieldErrors{}
	c.state = domain.SubmissionState{Status: domain.StatusSubmitting}
	snapshot := c.fields
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := c.transport.SubmitLead(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = domain.SubmissionState{Status: domain.StatusFailed, Reason: failureReason(err)}
		return domain.SubmissionResult{Outcome: domain.OutcomeFailed, Err: err}
	}

	c.state = domain.SubmissionState{Status: domain.StatusSubmitted}
	c.fields = domain.ContactForm{}
	c.errors = domain.FieldErrors{}
	return domain.SubmissionResult{Outcome: domain.OutcomeSubmitted}
}

// Reset returns a submitted form to Idle with empty fields. It does nothing
// in any other state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != domain.StatusSubmitted {
		return
	}
	c.state = domain.SubmissionState{Status: domain.StatusIdle}
	c.fields = domain.ContactForm{}
	c.errors = domain.FieldErrors{}
}

// State returns the current submission state
func (c *Controller) State() domain.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot copies the fields, errors and state for rendering
func (c *Controller) Snapshot() domain.FormSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.FormSnapshot{
		Fields: c.fields,
		Errors: c.errors.Clone(),
		State:  c.state,
	}
}

func failureReason(err error) string {
	var tf *domain.TransportFailure
	switch {
	case errors.As(err, &tf):
		return tf.Reason
	case errors.Is(err, context.DeadlineExceeded):
		return "submission timed out"
	case errors.Is(err, context.Canceled):
		return "submission was cancelled"
	default:
		return err.Error()
	}
}
