// Package proxy implements the dispatcher's request forwarder: pick a
// backend, replay the client's request against it over a fresh connection,
// and stream the response back unchanged.
package proxy

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hamidoujand/dispatch-sim/internal/pool"
)

// Forwarder is an http.Handler that dispatches every request it receives to
// one backend chosen by the Pool, opening a new TCP connection per request
// (no keep-alive reuse across requests, matching the counter semantics: one
// in-flight request is one TCP connection).
type Forwarder struct {
	Pool   *pool.Pool
	Logger zerolog.Logger

	// OnForwarded, if set, is called once per request with the backend
	// address and outcome label ("success" or "error") after the
	// exchange completes and the backend's counter has been released, so
	// callers can update metrics without this package depending on
	// Prometheus.
	OnForwarded func(backendAddress, outcome string)

	transport *http.Transport
}

// NewForwarder builds a Forwarder whose Transport never reuses a connection
// across requests, so a fresh connection is opened per request and the
// in-flight counter maps 1:1 to open TCP connections.
func NewForwarder(p *pool.Pool, logger zerolog.Logger) *Forwarder {
	return &Forwarder{
		Pool:   p,
		Logger: logger,
		transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
}

// ServeHTTP implements the forwarder contract: pick under lock (which also
// increments the chosen backend's counter), compose the target URI,
// copy every header verbatim, send over a fresh connection, stream the
// response back, then release exactly once.
func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	backend := f.Pool.Pick()
	outcome := "error"
	defer func() {
		f.Pool.Release(backend.Address())
		if f.OnForwarded != nil {
			f.OnForwarded(backend.Address(), outcome)
		}
	}()

	log := f.Logger.With().Str("request_id", requestID).Str("backend", backend.Address()).Logger()

	pathAndQuery := r.URL.RequestURI()
	if pathAndQuery == "" {
		pathAndQuery = "/"
	}
	targetURL := "http://" + backend.Address() + pathAndQuery

	outReq, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, r.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to build outbound request")
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	outReq.Header = r.Header.Clone()
	outReq.ContentLength = r.ContentLength

	start := time.Now()
	resp, err := f.transport.RoundTrip(outReq)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("forwarding failed")
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Err(err).Msg("client disconnected mid-response")
	}

	log.Info().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request forwarded")
	outcome = "success"
}
