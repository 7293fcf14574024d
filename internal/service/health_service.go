package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"webapp-template/internal/domain"
)

const defaultCheckTimeout = 5 * time.Second

// Checker is anything that can report its own reachability.
type Checker interface {
	Health(ctx context.Context) error
}

type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Health(ctx context.Context) error { return f(ctx) }

type namedCheck struct {
	name    string
	checker Checker
}

type HealthService struct {
	checks  []namedCheck
	timeout time.Duration
	log     zerolog.Logger
}

func NewHealthService(log zerolog.Logger) *HealthService {
	return &HealthService{
		timeout: defaultCheckTimeout,
		log:     log.With().Str("component", "health").Logger(),
	}
}

// Register adds a check. Checks run in registration order.
func (s *HealthService) Register(name string, c Checker) *HealthService {
	s.checks = append(s.checks, namedCheck{name: name, checker: c})
	return s
}

func (s *HealthService) Check(ctx context.Context) domain.HealthReport {
	report := domain.HealthReport{
		Status: domain.HealthHealthy,
		Checks: make(map[string]string, len(s.checks)),
	}

	for _, c := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := c.checker.Health(checkCtx)
		cancel()

		if err != nil {
			s.log.Warn().Err(err).Str("check", c.name).Msg("health check failed")
			report.Status = domain.HealthUnhealthy
			report.Checks[c.name] = "unavailable: " + err.Error()
			continue
		}
		report.Checks[c.name] = domain.CheckWorking
	}

	return report
}
