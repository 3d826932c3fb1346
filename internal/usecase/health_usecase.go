package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthCheck reports an optional dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

// Check never fails the service on an optional dependency; it only reports it
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status": "ok",
	}
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			out[name] = "unavailable"
			continue
		}
		out[name] = "ok"
	}
	return out
}
