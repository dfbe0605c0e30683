package health

import "time"

// Overall health statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusAlive     = "alive"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// Report is the JSON body returned by the health endpoints.
// A fresh Report is built per request and never mutated afterwards.
type Report struct {
	Status      string                 `json:"status"`
	Timestamp   string                 `json:"timestamp"`
	Application string                 `json:"application,omitempty"`
	Checks      map[string]CheckResult `json:"checks,omitempty"`
}

// aggregate folds individual check outcomes into the overall status:
// any error wins, then any warning, then healthy.
func aggregate(checks map[string]CheckResult) string {
	hasWarning := false
	for _, c := range checks {
		switch c.Status {
		case StatusError:
			return StatusUnhealthy
		case StatusWarning:
			hasWarning = true
		}
	}
	if hasWarning {
		return StatusDegraded
	}
	return StatusHealthy
}

// hasError reports whether any check failed at error level.
func hasError(checks map[string]CheckResult) bool {
	for _, c := range checks {
		if c.Status == StatusError {
			return true
		}
	}
	return false
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
