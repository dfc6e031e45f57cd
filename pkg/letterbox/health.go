package letterbox

import (
	"fmt"
	"time"
)

// HealthStatus represents the overall health state of a component.
type HealthStatus string

const (
	// HealthOK indicates the component is functioning normally.
	HealthOK HealthStatus = "ok"
	// HealthDegraded indicates partial functionality or non-critical issues.
	HealthDegraded HealthStatus = "degraded"
	// HealthUnhealthy indicates the component is not functioning.
	HealthUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck contains the health status of the instance and its components.
type HealthCheck struct {
	Status     HealthStatus
	Timestamp  time.Time
	Uptime     time.Duration
	Components map[string]ComponentHealth
	Message    string
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status      HealthStatus
	Message     string
	LastUpdated time.Time
}

// IsHealthy returns true if the overall status is HealthOK.
func (h HealthCheck) IsHealthy() bool {
	return h.Status == HealthOK
}

// IsDegraded returns true if the overall status is HealthDegraded.
func (h HealthCheck) IsDegraded() bool {
	return h.Status == HealthDegraded
}

// IsUnhealthy returns true if the overall status is HealthUnhealthy.
func (h HealthCheck) IsUnhealthy() bool {
	return h.Status == HealthUnhealthy
}

// Health reports on the instance, the applied geometry and recent errors.
// A running instance that has not received a usable surface size yet is
// degraded.
func (c *letterboxImpl) Health() HealthCheck {
	now := time.Now()
	running := c.running.Load()

	c.mu.RLock()
	var uptime time.Duration
	if running && !c.startTime.IsZero() {
		uptime = now.Sub(c.startTime)
	}
	c.mu.RUnlock()

	components := make(map[string]ComponentHealth, 3)
	component := func(name string, status HealthStatus, msg string) {
		components[name] = ComponentHealth{Status: status, Message: msg, LastUpdated: now}
	}

	if running {
		component("instance", HealthOK, "instance is running")
	} else {
		component("instance", HealthUnhealthy, "instance is not running")
	}

	r, hasResult := c.game.Result()
	applied, skipped := c.game.Stats()
	if hasResult {
		component("geometry", HealthOK, fmt.Sprintf("surface %s at scale %g (%d applied, %d skipped)",
			r.Surface, r.Scale, applied, skipped))
	} else {
		component("geometry", HealthDegraded, fmt.Sprintf("no surface applied yet (%d skipped)", skipped))
	}

	lastErr := c.getError()
	if lastErr != nil {
		component("errors", HealthDegraded, lastErr.Error())
	} else {
		component("errors", HealthOK, "no recent errors")
	}

	status, message := HealthOK, "all components healthy"
	switch {
	case !running:
		status, message = HealthUnhealthy, "instance is not running"
	case lastErr != nil:
		status, message = HealthDegraded, "running with recent errors"
	case !hasResult:
		status, message = HealthDegraded, "waiting for a usable surface size"
	}

	return HealthCheck{
		Status:     status,
		Timestamp:  now,
		Uptime:     uptime,
		Components: components,
		Message:    message,
	}
}
