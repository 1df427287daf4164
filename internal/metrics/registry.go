// Package metrics provides Prometheus metrics for the morada API.
// When metrics are disabled nothing is registered and recording is a
// no-op with zero overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry creates the process-wide metrics registry with the
// standard Go and process collectors. Must be called before any
// collector constructor for metrics to be enabled.
func InitRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// GetRegistry returns the metrics registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}

// IsEnabled reports whether metrics collection is enabled.
func IsEnabled() bool {
	return GetRegistry() != nil
}
