// Command dispatcher runs the reverse-proxy load balancer: it accepts
// client HTTP requests and forwards each one to exactly one backend from a
// fixed pool, picked by the active dispatch algorithm.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamidoujand/dispatch-sim/internal/config"
	"github.com/hamidoujand/dispatch-sim/internal/dispatcher"
	"github.com/hamidoujand/dispatch-sim/internal/logging"
	"github.com/hamidoujand/dispatch-sim/internal/metrics"
	"github.com/hamidoujand/dispatch-sim/internal/pool"
	"github.com/hamidoujand/dispatch-sim/internal/proxy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dispatcher:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New("dispatcher")

	cfg, err := config.LoadDispatcher()
	if err != nil {
		return err
	}

	p, err := pool.New(config.DefaultBackends)
	if err != nil {
		return fmt.Errorf("building backend pool: %w", err)
	}

	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry)

	forwarder := proxy.NewForwarder(p, logger)
	forwarder.OnForwarded = func(backendAddress, outcome string) {
		collectors.ForwardedRequests.WithLabelValues(backendAddress, outcome).Inc()
		snap, _ := p.Snapshot()
		collectors.ObservePool(snap)
	}
	p.OnAlgorithmChange = func(algorithm string) {
		collectors.AlgorithmChanges.WithLabelValues("supervisor", algorithm).Inc()
		logger.Info().Str("algorithm", algorithm).Msg("supervisor changed dispatch algorithm")
	}

	mux := dispatcher.NewMux(p, forwarder, collectors, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Strs("backends", config.DefaultBackends).Msg("dispatcher listening")

	return http.ListenAndServe(addr, mux)
}
