// Package health provides in-process health checks for a running
// simulation. Checks are polled by the command between ticks and their
// aggregated status is logged.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sony/gobreaker"
)

// HealthCheck defines the interface for individual health checks.
// Each component can implement this interface to provide its health status.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the simulation.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed.
func (s HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// Failing returns the names of failing checks in sorted order.
func (s HealthStatus) Failing() []string {
	var names []string
	for name, c := range s.Checks {
		if c.Status != "healthy" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// BreakerHealthCheck fails while a circuit breaker is open.
type BreakerHealthCheck struct {
	state func() gobreaker.State
}

// NewBreakerHealthCheck creates a check over the breaker state reported by state.
func NewBreakerHealthCheck(state func() gobreaker.State) *BreakerHealthCheck {
	return &BreakerHealthCheck{state: state}
}

// Name returns the name of this health check.
func (b *BreakerHealthCheck) Name() string {
	return "body_factory"
}

// Check verifies that body creation is not suspended.
func (b *BreakerHealthCheck) Check(ctx context.Context) error {
	if s := b.state(); s == gobreaker.StateOpen {
		return fmt.Errorf("body creation circuit is %s", s)
	}
	return nil
}

// TickProgressCheck fails when the tick counter has not moved since the
// previous check.
type TickProgressCheck struct {
	tick func() uint64
	last uint64
	seen bool
	mu   sync.Mutex
}

// NewTickProgressCheck creates a check over the counter reported by tick.
func NewTickProgressCheck(tick func() uint64) *TickProgressCheck {
	return &TickProgressCheck{tick: tick}
}

// Name returns the name of this health check.
func (p *TickProgressCheck) Name() string {
	return "tick_progress"
}

// Check verifies that the simulation advanced since the last call.
func (p *TickProgressCheck) Check(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.tick()
	stalled := p.seen && now == p.last
	p.last, p.seen = now, true
	if stalled {
		return fmt.Errorf("simulation stalled at tick %d", now)
	}
	return nil
}

// BodyBudgetCheck fails when the number of live bodies exceeds a limit.
type BodyBudgetCheck struct {
	maxBodies int
	count     func() int
}

// NewBodyBudgetCheck creates a check over the body count reported by count.
func NewBodyBudgetCheck(maxBodies int, count func() int) *BodyBudgetCheck {
	return &BodyBudgetCheck{
		maxBodies: maxBodies,
		count:     count,
	}
}

// Name returns the name of this health check.
func (b *BodyBudgetCheck) Name() string {
	return "body_budget"
}

// Check verifies that the body count is within the limit.
func (b *BodyBudgetCheck) Check(ctx context.Context) error {
	if n := b.count(); n > b.maxBodies {
		return fmt.Errorf("%d live bodies exceeds limit %d", n, b.maxBodies)
	}
	return nil
}
