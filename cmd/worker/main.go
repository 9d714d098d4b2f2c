// Command worker runs the tunable worker service: /health, /work
// (simulated latency and injected failures), and /setup (atomic retune of
// the latency distribution and error rate).
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/hamidoujand/dispatch-sim/internal/config"
	"github.com/hamidoujand/dispatch-sim/internal/logging"
	"github.com/hamidoujand/dispatch-sim/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New("worker")

	cfg, env, err := config.LoadWorker()
	if err != nil {
		return err
	}

	tunables := worker.NewTunables()
	mux := worker.NewMux(tunables, logger)

	addr := net.JoinHostPort(env.BindAddress(), fmt.Sprintf("%d", cfg.Port))
	logger.Info().Str("addr", addr).Str("environment", string(env)).Msg("worker listening")

	return http.ListenAndServe(addr, mux)
}
