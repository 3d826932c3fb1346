package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"nymble-website/internal/domain"
	"nymble-website/pkg/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lead = domain.ContactForm{
	Name:     "Jane",
	Company:  "Acme",
	Email:    "jane@acme.com",
	Interest: domain.InterestDemo,
	Source:   domain.SourceLinkedIn,
}

func TestSimulatedSucceedsAfterDelay(t *testing.T) {
	s := transport.NewSimulated(10 * time.Millisecond)

	start := time.Now()
	err := s.SubmitLead(context.Background(), lead)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, int64(1), s.Calls())
}

func TestSimulatedHonoursContext(t *testing.T) {
	s := transport.NewSimulated(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := s.SubmitLead(ctx, lead)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulatedFailures(t *testing.T) {
	s := transport.NewSimulated(0)
	s.FailNext("first")
	s.FailNext("second")

	var tf *domain.TransportFailure
	err := s.SubmitLead(context.Background(), lead)
	require.ErrorAs(t, err, &tf)
	assert.Equal(t, "first", tf.Reason)

	err = s.SubmitLead(context.Background(), lead)
	require.ErrorAs(t, err, &tf)
	assert.Equal(t, "second", tf.Reason)

	assert.NoError(t, s.SubmitLead(context.Background(), lead))

	s.FailAlways("maintenance")
	err = s.SubmitLead(context.Background(), lead)
	require.ErrorAs(t, err, &tf)
	assert.Equal(t, "maintenance", tf.Reason)

	s.FailAlways("")
	assert.NoError(t, s.SubmitLead(context.Background(), lead))
}

func TestLoggedKeepsContactDetailsOut(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	sim := transport.NewSimulated(0)
	sim.FailNext("nope")
	l := transport.NewLogged(sim, logger)

	assert.Error(t, l.SubmitLead(context.Background(), lead))
	assert.NoError(t, l.SubmitLead(context.Background(), lead))

	out := buf.String()
	assert.NotContains(t, out, "jane@acme.com")
	assert.NotContains(t, out, "Jane")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "lead_transport", first["component"])
	assert.Equal(t, "nymblsense-demo", first["interest"])
	assert.NotEmpty(t, first["reference_id"])
}
