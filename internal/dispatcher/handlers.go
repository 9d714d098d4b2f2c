// Package dispatcher wires the pool, the forwarder, and the /algo
// control-plane handler into one HTTP mux.
package dispatcher

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hamidoujand/dispatch-sim/internal/metrics"
	"github.com/hamidoujand/dispatch-sim/internal/pool"
	"github.com/hamidoujand/dispatch-sim/internal/proxy"
)

type algoRequest struct {
	Algo string `json:"algo"`
}

// AlgoHandler returns the POST /algo control-plane handler: it validates
// the requested algorithm name and, if valid, applies it as an operator
// override that bypasses the supervisor's hysteresis window.
func AlgoHandler(p *pool.Pool, collectors *metrics.Collectors, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req algoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Algo == "" {
			msg := "Missing or invalid 'algo' key"
			logger.Warn().Msg(msg)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		algo, err := pool.ParseAlgorithm(req.Algo)
		if err != nil {
			msg := fmt.Sprintf("Invalid algorithm value '%s'", req.Algo)
			logger.Warn().Msg(msg)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		p.SetAlgorithm(algo)
		if collectors != nil {
			collectors.AlgorithmChanges.WithLabelValues("manual", algo.String()).Inc()
		}

		msg := fmt.Sprintf("Algorithm changed successfully to %s", algo)
		logger.Info().Msg(msg)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, msg)
	}
}

// NewMux assembles the dispatcher's routing: POST /algo goes to the
// control-plane handler, GET /metrics serves the Prometheus exposition
// format from a read-only snapshot, and everything else is forwarded.
func NewMux(p *pool.Pool, forwarder *proxy.Forwarder, collectors *metrics.Collectors, metricsHandler http.Handler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /algo", AlgoHandler(p, collectors, logger))
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("/", forwarder)
	return mux
}
