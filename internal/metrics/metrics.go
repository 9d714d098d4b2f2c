// Package metrics exposes the dispatcher's Prometheus collectors. It is
// purely observational: nothing here can influence a dispatch decision.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hamidoujand/dispatch-sim/internal/pool"
)

// Collectors groups the dispatcher's Prometheus metrics.
type Collectors struct {
	BackendConnections *prometheus.GaugeVec
	AlgorithmChanges   *prometheus.CounterVec
	ForwardedRequests  *prometheus.CounterVec
}

// NewCollectors registers and returns the dispatcher's metrics against the
// given registry.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)

	return &Collectors{
		BackendConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dispatch_sim",
			Name:      "backend_in_flight_connections",
			Help:      "Current in-flight request count per backend.",
		}, []string{"backend"}),

		AlgorithmChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dispatch_sim",
			Name:      "algorithm_changes_total",
			Help:      "Number of times the active dispatch algorithm changed.",
		}, []string{"source", "algorithm"}),

		ForwardedRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dispatch_sim",
			Name:      "forwarded_requests_total",
			Help:      "Number of requests forwarded to a backend, by outcome.",
		}, []string{"backend", "outcome"}),
	}
}

// ObservePool snapshots the pool's per-backend counters into the gauge. It
// should be called after every pick/release so the exposed gauge tracks the
// pool's live state without the pool package depending on Prometheus.
func (c *Collectors) ObservePool(snapshot []pool.BackendSnapshot) {
	for _, b := range snapshot {
		c.BackendConnections.WithLabelValues(b.Address).Set(float64(b.Connections))
	}
}
