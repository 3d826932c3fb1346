package transport

import (
	"context"
	"log/slog"
	"time"

	"nymble-website/internal/domain"

	"github.com/google/uuid"
)

// Logged wraps a transport and logs every delivery attempt with a reference id
type Logged struct {
	next   domain.LeadTransport
	logger *slog.Logger
}

func NewLogged(next domain.LeadTransport, logger *slog.Logger) *Logged {
	return &Logged{
		next:   next,
		logger: logger.With("component", "lead_transport"),
	}
}

func (l *Logged) SubmitLead(ctx context.Context, form domain.ContactForm) error {
	ref := uuid.NewString()
	start := time.Now()

	// Contact details stay out of the logs
	l.logger.Info("Submitting lead",
		"reference_id", ref,
		"interest", form.Interest,
		"source", form.Source,
		"has_message", form.Message != "",
	)

	if err := l.next.SubmitLead(ctx, form); err != nil {
		l.logger.Warn("Lead submission failed",
			"reference_id", ref,
			"duration", time.Since(start),
			"error", err,
		)
		return err
	}

	l.logger.Info("Lead delivered", "reference_id", ref, "duration", time.Since(start))
	return nil
}
