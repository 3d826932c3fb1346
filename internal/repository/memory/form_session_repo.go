package memory

import (
	"context"
	"sync"
	"time"

	"nymble-website/internal/domain"

	"github.com/google/uuid"
)

type formSession struct {
	controller domain.FormController
	lastSeen   time.Time
}

type formSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*formSession
	ttl      time.Duration
	factory  func() domain.FormController
	now      func() time.Time
}

// NewFormSessionRepository keeps form controllers in memory. Sessions idle for
// longer than ttl are removed by Sweep; a zero ttl keeps them forever.
func NewFormSessionRepository(ttl time.Duration, factory func() domain.FormController) domain.FormSessionRepository {
	return newFormSessionRepo(ttl, factory, time.Now)
}

func newFormSessionRepo(ttl time.Duration, factory func() domain.FormController, now func() time.Time) *formSessionRepo {
	return &formSessionRepo{
		sessions: make(map[string]*formSession),
		ttl:      ttl,
		factory:  factory,
		now:      now,
	}
}

// Create starts a new session with a fresh controller
func (r *formSessionRepo) Create(ctx context.Context) (string, domain.FormController, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	ctrl := r.factory()

	r.mu.Lock()
	r.sessions[id] = &formSession{controller: ctrl, lastSeen: r.now()}
	r.mu.Unlock()

	return id, ctrl, nil
}

// Get returns the controller for id and marks the session as active
func (r *formSessionRepo) Get(ctx context.Context, id string) (domain.FormController, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || r.expired(s) {
		return nil, domain.ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s.controller, nil
}

// Sweep removes expired sessions. A session in the middle of a submission is
// kept until the submission resolves.
func (r *formSessionRepo) Sweep(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !r.expired(s) {
			continue
		}
		if s.controller.Snapshot().State.Status == domain.StatusSubmitting {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

func (r *formSessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *formSessionRepo) expired(s *formSession) bool {
	return r.ttl > 0 && r.now().Sub(s.lastSeen) > r.ttl
}
