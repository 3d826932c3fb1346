package contactform_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nymble-website/internal/contactform"
	"nymble-website/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeTransport records calls and can block until released
type fakeTransport struct {
	calls   atomic.Int32
	mu      sync.Mutex
	got     []domain.ContactForm
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeTransport) SubmitLead(ctx context.Context, form domain.ContactForm) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.got = append(f.got, form)
	err := f.err
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeTransport) failWith(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func fill(c *contactform.Controller, form domain.ContactForm) {
	for field, value := range form.Values() {
		c.UpdateField(field, value)
	}
}

func TestUpdateFieldStoresValueVerbatim(t *testing.T) {
	c := contactform.New(&fakeTransport{})

	values := []string{"", "  padded  ", "Jane", "ünïcødé ✓", "line\nbreak"}
	for _, field := range domain.Fields {
		for _, v := range values {
			c.UpdateField(field, v)
			got, ok := c.Field(field)
			require.True(t, ok)
			assert.Equal(t, v, got, "field %s", field)
		}
	}
}

func TestUpdateFieldIgnoresUnknownField(t *testing.T) {
	c := contactform.New(&fakeTransport{})
	c.UpdateField("favourite_colour", "blue")

	_, ok := c.Field("favourite_colour")
	assert.False(t, ok)
	assert.Equal(t, domain.ContactForm{}, c.Snapshot().Fields)
}

func TestUpdateFieldClearsError(t *testing.T) {
	c := contactform.New(&fakeTransport{})

	res := c.Submit(context.Background())
	require.Equal(t, domain.OutcomeInvalid, res.Outcome)
	require.Contains(t, c.Snapshot().Errors, domain.FieldEmail)

	// cleared optimistically, even though the new value is still invalid
	c.UpdateField(domain.FieldEmail, "still-bad")
	errs := c.Snapshot().Errors
	assert.NotContains(t, errs, domain.FieldEmail)
	assert.Contains(t, errs, domain.FieldName)
}

func TestUpdateFieldRevalidateOnChange(t *testing.T) {
	c := contactform.New(&fakeTransport{}, contactform.WithRevalidateOnChange())

	c.Submit(context.Background())
	require.Equal(t, domain.ErrorRequired, c.Snapshot().Errors[domain.FieldEmail].Kind)

	c.UpdateField(domain.FieldEmail, "still-bad")
	assert.Equal(t, domain.ErrorInvalidFormat, c.Snapshot().Errors[domain.FieldEmail].Kind)

	c.UpdateField(domain.FieldEmail, "jane@acme.com")
	assert.NotContains(t, c.Snapshot().Errors, domain.FieldEmail)

	// fields without an error are not checked on change
	c.UpdateField(domain.FieldPhone, "x")
	c.UpdateField(domain.FieldEmail, "bad")
	assert.NotContains(t, c.Snapshot().Errors, domain.FieldEmail)
}

func TestValidateDoesNotMutate(t *testing.T) {
	c := contactform.New(&fakeTransport{})

	valid, errs := c.Validate()
	assert.False(t, valid)
	assert.Len(t, errs, 4)

	snap := c.Snapshot()
	assert.Empty(t, snap.Errors)
	assert.Equal(t, domain.StatusIdle, snap.State.Status)
}

func TestSubmitInvalidSkipsTransport(t *testing.T) {
	tr := &fakeTransport{}
	c := contactform.New(tr)

	res := c.Submit(context.Background())

	assert.Equal(t, domain.OutcomeInvalid, res.Outcome)
	assert.Len(t, res.Errors, 4)
	assert.Zero(t, tr.calls.Load())
	assert.Equal(t, domain.StatusIdle, c.State().Status)
}

func TestSubmitSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := &fakeTransport{started: make(chan struct{}), release: make(chan struct{})}
	c := contactform.New(tr)
	fill(c, validForm())

	done := make(chan domain.SubmissionResult)
	go func() { done <- c.Submit(context.Background()) }()

	<-tr.started
	assert.Equal(t, domain.StatusSubmitting, c.State().Status)

	close(tr.release)
	res := <-done

	assert.Equal(t, domain.OutcomeSubmitted, res.Outcome)
	assert.NoError(t, res.Err)

	snap := c.Snapshot()
	assert.Equal(t, domain.StatusSubmitted, snap.State.Status)
	assert.Equal(t, domain.ContactForm{}, snap.Fields)
	assert.Empty(t, snap.Errors)

	require.Len(t, tr.got, 1)
	assert.Equal(t, validForm(), tr.got[0])
}

func TestSubmitSingleFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := &fakeTransport{started: make(chan struct{}, 1), release: make(chan struct{})}
	c := contactform.New(tr)
	fill(c, validForm())

	done := make(chan domain.SubmissionResult)
	go func() { done <- c.Submit(context.Background()) }()
	<-tr.started

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := c.Submit(context.Background())
			assert.Equal(t, domain.OutcomeInFlight, res.Outcome)
		}()
	}
	wg.Wait()

	close(tr.release)
	assert.Equal(t, domain.OutcomeSubmitted, (<-done).Outcome)
	assert.Equal(t, int32(1), tr.calls.Load())

	// a submitted form stays submitted until reset
	assert.Equal(t, domain.OutcomeAlreadySubmitted, c.Submit(context.Background()).Outcome)
	assert.Equal(t, int32(1), tr.calls.Load())
}

func TestEditsDuringSubmitDoNotReachSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := &fakeTransport{started: make(chan struct{}), release: make(chan struct{})}
	c := contactform.New(tr)
	fill(c, validForm())

	done := make(chan domain.SubmissionResult)
	go func() { done <- c.Submit(context.Background()) }()
	<-tr.started

	c.UpdateField(domain.FieldName, "Someone Else")
	v, _ := c.Field(domain.FieldName)
	assert.Equal(t, "Someone Else", v)

	close(tr.release)
	<-done

	require.Len(t, tr.got, 1)
	assert.Equal(t, "Jane", tr.got[0].Name)
}

func TestSubmitFailureKeepsFieldsAndRetries(t *testing.T) {
	tr := &fakeTransport{}
	tr.failWith(&domain.TransportFailure{Reason: "upstream unavailable"})
	c := contactform.New(tr)
	fill(c, validForm())

	res := c.Submit(context.Background())

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	var tf *domain.TransportFailure
	require.ErrorAs(t, res.Err, &tf)

	snap := c.Snapshot()
	assert.Equal(t, domain.SubmissionState{Status: domain.StatusFailed, Reason: "upstream unavailable"}, snap.State)
	assert.Equal(t, validForm(), snap.Fields)

	tr.failWith(nil)
	res = c.Submit(context.Background())

	assert.Equal(t, domain.OutcomeSubmitted, res.Outcome)
	assert.Equal(t, domain.StatusSubmitted, c.State().Status)
	assert.Equal(t, int32(2), tr.calls.Load())
}

func TestSubmitInvalidFromFailedKeepsFailed(t *testing.T) {
	tr := &fakeTransport{}
	tr.failWith(errors.New("boom"))
	c := contactform.New(tr)
	fill(c, validForm())
	c.Submit(context.Background())

	c.UpdateField(domain.FieldEmail, "")
	res := c.Submit(context.Background())

	assert.Equal(t, domain.OutcomeInvalid, res.Outcome)
	assert.Equal(t, domain.SubmissionState{Status: domain.StatusFailed, Reason: "boom"}, c.State())
	assert.Equal(t, int32(1), tr.calls.Load())
}

func TestSubmitTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := &fakeTransport{release: make(chan struct{})}
	c := contactform.New(tr, contactform.WithTimeout(20*time.Millisecond))
	fill(c, validForm())

	res := c.Submit(context.Background())

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, "submission timed out", c.State().Reason)
	assert.Equal(t, validForm(), c.Snapshot().Fields)
}

func TestReset(t *testing.T) {
	tr := &fakeTransport{}
	c := contactform.New(tr)

	// no-op from Idle
	c.UpdateField(domain.FieldName, "Jane")
	c.Reset()
	v, _ := c.Field(domain.FieldName)
	assert.Equal(t, "Jane", v)
	assert.Equal(t, domain.StatusIdle, c.State().Status)

	// no-op from Failed
	tr.failWith(errors.New("down"))
	fill(c, validForm())
	c.Submit(context.Background())
	c.Reset()
	assert.Equal(t, domain.StatusFailed, c.State().Status)
	assert.Equal(t, validForm(), c.Snapshot().Fields)

	// from Submitted back to Idle
	tr.failWith(nil)
	c.Submit(context.Background())
	require.Equal(t, domain.StatusSubmitted, c.State().Status)
	c.UpdateField(domain.FieldMessage, "typed after success")

	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, domain.StatusIdle, snap.State.Status)
	assert.Equal(t, domain.ContactForm{}, snap.Fields)
	assert.Empty(t, snap.Errors)
}

func TestResetWhileSubmittingIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := &fakeTransport{started: make(chan struct{}), release: make(chan struct{})}
	c := contactform.New(tr)
	fill(c, validForm())

	done := make(chan domain.SubmissionResult)
	go func() { done <- c.Submit(context.Background()) }()
	<-tr.started

	c.Reset()
	assert.Equal(t, domain.StatusSubmitting, c.State().Status)

	close(tr.release)
	<-done
	assert.Equal(t, domain.StatusSubmitted, c.State().Status)
}
