package campus

import (
	"context"
	"errors"
	"time"

	healthuc "github.com/enayetsyl/industry-grade-project-format/internal/usecase/health"
)

// Aggregate health values of HealthStatus.Status.
const (
	HealthOK       = string(healthuc.Healthy)
	HealthDegraded = string(healthuc.Degraded)
	HealthError    = string(healthuc.Unhealthy)
)

var errUnhealthy = errors.New("document store unreachable")

// HealthStatus is the result of Client.Health. Checks maps "database" and,
// when a count cache is configured, "cache" to "ok" or "error".
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Healthy reports whether listing is available. A degraded client still serves
// lists, only without the count cache.
func (h HealthStatus) Healthy() bool { return h.Status != HealthError }

// Cached reports whether totals are currently served through the count cache.
func (h HealthStatus) Cached() bool {
	return h.Checks[healthuc.ComponentCache] == string(healthuc.CheckOK)
}

// Health pings the document store and the count cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	var err error
	if report.Status == healthuc.Unhealthy {
		err = errUnhealthy
	}
	c.obs.observe(scopeClient, "health", start, err)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
