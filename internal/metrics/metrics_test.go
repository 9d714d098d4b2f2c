package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/hamidoujand/dispatch-sim/internal/pool"
)

func TestObservePool_SetsGaugePerBackend(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectors(reg)

	c.ObservePool([]pool.BackendSnapshot{
		{Address: "127.0.0.1:3000", Connections: 2},
		{Address: "127.0.0.1:3001", Connections: 0},
	})

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range metricFamilies {
		if mf.GetName() != "dispatch_sim_backend_in_flight_connections" {
			continue
		}
		found = true
		for _, m := range mf.GetMetric() {
			if labelValue(m, "backend") == "127.0.0.1:3000" {
				require.Equal(t, 2.0, m.GetGauge().GetValue())
			}
		}
	}
	require.True(t, found)
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
