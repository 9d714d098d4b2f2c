package worker

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// clampMultiplier bounds a parsed multiplier to [1, 10], defaulting to 1
// when parsing fails.
func clampMultiplier(raw string) int {
	m, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if m < 1 {
		return 1
	}
	if m > 10 {
		return 10
	}
	return m
}

type workRequest struct {
	Multiplier string `json:"multiplier"`
}

// HealthHandler serves GET /health.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// WorkHandler serves POST /work: it sleeps for a duration drawn from the
// current tunables times the requested multiplier, then returns 200 or 500
// according to the current error rate.
func WorkHandler(t *Tunables, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workRequest
		_ = json.NewDecoder(r.Body).Decode(&req) // unparsable/absent body -> zero value -> default multiplier

		multiplier := clampMultiplier(req.Multiplier)

		min, max := t.Durations()
		errorRate := t.ErrorRate()

		base := min
		if max > min {
			base = min + uint64(rand.Int63n(int64(max-min+1)))
		}
		sleep := time.Duration(uint64(multiplier)*base) * time.Millisecond

		fail := rand.Float64() < errorRate

		time.Sleep(sleep)

		status := http.StatusOK
		if fail {
			status = http.StatusInternalServerError
		}

		logger.Info().
			Int("multiplier", multiplier).
			Dur("sleep", sleep).
			Bool("failed", fail).
			Msg("work done")

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		fmt.Fprint(w, "Work done")
	}
}

type setupRequest struct {
	MinDuration string `json:"min_duration"`
	MaxDuration string `json:"max_duration"`
	ErrorRate   string `json:"error_rate"`
}

// SetupHandler serves POST /setup: it parses the three stringified fields,
// applies defaults/floors/clamps as documented, and atomically replaces the
// tunables. It always returns 200 (unparsable input falls back to defaults
// rather than producing an error).
func SetupHandler(t *Tunables, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		min, err := strconv.ParseUint(req.MinDuration, 10, 64)
		if err != nil {
			min = DefaultMinDurationMs
		}

		max, err := strconv.ParseUint(req.MaxDuration, 10, 64)
		if err != nil {
			max = min
		}
		// Floor against the default and against min itself, so the
		// min <= max invariant holds regardless of what was parsed.
		if max < DefaultMaxDurationMs {
			max = DefaultMaxDurationMs
		}
		if max < min {
			max = min
		}

		errorRate, err := strconv.ParseFloat(req.ErrorRate, 64)
		if err != nil {
			errorRate = DefaultErrorRate
		}
		if errorRate < 0 {
			errorRate = 0
		}
		if errorRate > 1 {
			errorRate = 1
		}

		t.Set(min, max, errorRate)

		logger.Info().
			Uint64("min_duration_ms", min).
			Uint64("max_duration_ms", max).
			Float64("error_rate", errorRate).
			Msg("tunables updated")

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "min_duration=%d, max_duration=%d, error_rate=%.2f", min, max, errorRate)
	}
}

// NewMux assembles the worker's three routes; any other method/path 404s.
func NewMux(t *Tunables, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthHandler)
	mux.HandleFunc("POST /work", WorkHandler(t, logger))
	mux.HandleFunc("POST /setup", SetupHandler(t, logger))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not Found")
	})
	return mux
}
