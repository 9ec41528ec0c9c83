package client

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// counters mirrors the client's health counters into the process-wide
// metrics set, labeled by transport backend, for Prometheus-style
// scraping. The client's own atomic fields stay authoritative for the
// per-instance health snapshot.
type counters struct {
	requests   *metrics.Counter
	failures   *metrics.Counter
	reconnects *metrics.Counter
	rejections *metrics.Counter
}

func newCounters(backend string) *counters {
	return &counters{
		requests:   metrics.GetOrCreateCounter(fmt.Sprintf(`ipc_requests_total{backend=%q}`, backend)),
		failures:   metrics.GetOrCreateCounter(fmt.Sprintf(`ipc_requests_failed_total{backend=%q}`, backend)),
		reconnects: metrics.GetOrCreateCounter(fmt.Sprintf(`ipc_reconnects_total{backend=%q}`, backend)),
		rejections: metrics.GetOrCreateCounter(fmt.Sprintf(`ipc_circuit_rejections_total{backend=%q}`, backend)),
	}
}
