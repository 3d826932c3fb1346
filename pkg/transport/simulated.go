package transport

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"nymble-website/internal/domain"
)

// DefaultDelay matches the pause the site has always shown before confirming a lead
const DefaultDelay = 2 * time.Second

// Simulated stands in for a real lead delivery API. It waits for the
// configured delay and then succeeds unless a failure was queued.
type Simulated struct {
	delay       time.Duration
	failAlways  string
	mu          sync.Mutex
	queuedFails []string
	calls       atomic.Int64
}

// NewSimulated creates a transport that resolves after delay
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

// FailAlways makes every submission fail with reason. An empty reason turns it off.
func (s *Simulated) FailAlways(reason string) *Simulated {
	s.mu.Lock()
	s.failAlways = reason
	s.mu.Unlock()
	return s
}

// FailNext queues a failure for the next submission
func (s *Simulated) FailNext(reason string) {
	s.mu.Lock()
	s.queuedFails = append(s.queuedFails, reason)
	s.mu.Unlock()
}

// Calls returns how many submissions were attempted
func (s *Simulated) Calls() int64 {
	return s.calls.Load()
}

// SubmitLead waits for the delay or until ctx is done
func (s *Simulated) SubmitLead(ctx context.Context, form domain.ContactForm) error {
	s.calls.Add(1)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queuedFails) > 0 {
		reason := s.queuedFails[0]
		s.queuedFails = s.queuedFails[1:]
		return &domain.TransportFailure{Reason: reason}
	}
	if s.failAlways != "" {
		return &domain.TransportFailure{Reason: s.failAlways}
	}
	return nil
}
