package dispatcher

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamidoujand/dispatch-sim/internal/logging"
	"github.com/hamidoujand/dispatch-sim/internal/metrics"
	"github.com/hamidoujand/dispatch-sim/internal/pool"
)

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()
	p, err := pool.New([]string{"127.0.0.1:3000", "127.0.0.1:3001"})
	require.NoError(t, err)
	return p
}

func TestAlgoHandler_ValidAlgorithmSwitches(t *testing.T) {
	p := newTestPool(t)
	collectors := metrics.NewCollectors(prometheus.NewRegistry())
	logger := logging.New("test")

	handler := AlgoHandler(p, collectors, logger)

	req := httptest.NewRequest(http.MethodPost, "/algo", strings.NewReader(`{"algo":"least_connections"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Algorithm changed successfully to least_connections")
	assert.Equal(t, pool.LeastConnections, p.Algorithm())
}

func TestAlgoHandler_UnknownAlgorithmReturns400(t *testing.T) {
	p := newTestPool(t)
	collectors := metrics.NewCollectors(prometheus.NewRegistry())
	logger := logging.New("test")

	handler := AlgoHandler(p, collectors, logger)

	req := httptest.NewRequest(http.MethodPost, "/algo", strings.NewReader(`{"algo":"bogus"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid algorithm value 'bogus'")
	assert.Equal(t, pool.RoundRobin, p.Algorithm())
}

func TestAlgoHandler_MissingKeyReturns400(t *testing.T) {
	p := newTestPool(t)
	collectors := metrics.NewCollectors(prometheus.NewRegistry())
	logger := logging.New("test")

	handler := AlgoHandler(p, collectors, logger)

	req := httptest.NewRequest(http.MethodPost, "/algo", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
