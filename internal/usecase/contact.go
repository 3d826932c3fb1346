package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nymble-website/internal/domain"
	"nymble-website/pkg/logger"
)

type contactUsecase struct {
	sessions domain.FormSessionRepository
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sessions domain.FormSessionRepository) domain.ContactUsecase {
	return &contactUsecase{
		sessions: sessions,
	}
}

// OpenSession keeps a live session or starts a new one
func (uc *contactUsecase) OpenSession(ctx context.Context, id string) (string, error) {
	if id != "" {
		_, err := uc.sessions.Get(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return "", fmt.Errorf("failed to load form session: %w", err)
		}
	}

	newID, _, err := uc.sessions.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create form session: %w", err)
	}
	logger.Log.Debug("Form session opened", "session_id", newID)
	return newID, nil
}

// Form returns the current state of the session's form
func (uc *contactUsecase) Form(ctx context.Context, sessionID string) (domain.FormSnapshot, error) {
	ctrl, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.FormSnapshot{}, err
	}
	return ctrl.Snapshot(), nil
}

// UpdateFields applies field edits in display order. Unknown field names
// reject the whole update.
func (uc *contactUsecase) UpdateFields(ctx context.Context, sessionID string, values map[domain.Field]string) (domain.FormSnapshot, error) {
	for field := range values {
		if _, err := domain.ParseField(string(field)); err != nil {
			return domain.FormSnapshot{}, err
		}
	}

	ctrl, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.FormSnapshot{}, err
	}

	for _, field := range domain.Fields {
		if value, ok := values[field]; ok {
			ctrl.UpdateField(field, value)
		}
	}
	return ctrl.Snapshot(), nil
}

// Submit runs the form's submit lifecycle and logs the outcome
func (uc *contactUsecase) Submit(ctx context.Context, sessionID string) (domain.SubmissionResult, domain.FormSnapshot, error) {
	ctrl, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.SubmissionResult{}, domain.FormSnapshot{}, err
	}

	start := time.Now()
	result := ctrl.Submit(ctx)
	snapshot := ctrl.Snapshot()

	log := logger.Log.With("session_id", sessionID, "outcome", result.Outcome)
	switch result.Outcome {
	case domain.OutcomeSubmitted:
		log.Info("Contact form submitted", "duration", time.Since(start))
	case domain.OutcomeFailed:
		log.Warn("Contact form submission failed", "reason", snapshot.State.Reason, "error", result.Err)
	case domain.OutcomeInvalid:
		log.Debug("Contact form rejected", "fields", invalidFields(result.Errors))
	default:
		log.Debug("Contact form submit ignored", "status", snapshot.State.Status)
	}

	return result, snapshot, nil
}

// Reset clears a submitted form so another message can be sent
func (uc *contactUsecase) Reset(ctx context.Context, sessionID string) (domain.FormSnapshot, error) {
	ctrl, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.FormSnapshot{}, err
	}
	ctrl.Reset()
	return ctrl.Snapshot(), nil
}

func invalidFields(errs domain.FieldErrors) []string {
	out := make([]string, 0, len(errs))
	for _, f := range domain.Fields {
		if _, ok := errs[f]; ok {
			out = append(out, string(f))
		}
	}
	return out
}

// RunSessionSweeper evicts idle form sessions every interval until ctx is done
func RunSessionSweeper(ctx context.Context, sessions domain.FormSessionRepository, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := sessions.Sweep(ctx); removed > 0 {
				logger.Log.LogAttrs(ctx, slog.LevelDebug, "Swept idle form sessions",
					slog.Int("removed", removed),
					slog.Int("remaining", sessions.Len()),
				)
			}
		}
	}
}
