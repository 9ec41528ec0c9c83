package client

import "math"

// HealthMetrics is the observable health snapshot of one client
// instance. Counters are monotonic and reset only by process restart.
type HealthMetrics struct {
	Connected        bool    `json:"connected"`
	CircuitState     string  `json:"circuit_state"`
	TotalRequests    uint64  `json:"total_requests"`
	FailedRequests   uint64  `json:"failed_requests"`
	ErrorRatePercent float64 `json:"error_rate_percent"`
	TotalReconnects  uint64  `json:"total_reconnects"`
	FailureCount     int     `json:"failure_count"`
	FailureThreshold int     `json:"failure_threshold"`
	IPCAuthEnabled   bool    `json:"ipc_auth_enabled"`
	IPCAuthValid     *bool   `json:"ipc_auth_valid"`
}

// HealthMetrics returns the current health snapshot. Safe to call from
// any goroutine.
func (c *Client) HealthMetrics() HealthMetrics {
	total := c.totalRequests.Load()
	failed := c.failedRequests.Load()

	var errorRate float64
	if total > 0 {
		errorRate = math.Round(float64(failed)/float64(total)*100*100) / 100
	}

	var authValid *bool
	if c.conf.Auth.Enabled {
		v := c.IsAuthorized()
		authValid = &v
	}

	return HealthMetrics{
		Connected:        c.connected.Load(),
		CircuitState:     c.brk.State().String(),
		TotalRequests:    total,
		FailedRequests:   failed,
		ErrorRatePercent: errorRate,
		TotalReconnects:  c.totalReconnects.Load(),
		FailureCount:     c.brk.FailureCount(),
		FailureThreshold: c.conf.Breaker.FailureThreshold,
		IPCAuthEnabled:   c.conf.Auth.Enabled,
		IPCAuthValid:     authValid,
	}
}
