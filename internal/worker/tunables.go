// Package worker implements the tunable worker service: /health, /work
// (simulated latency and injected failures), and /setup (atomic retune).
package worker

import "sync"

// Defaults applied when /setup omits a field, receives an unparsable value,
// or (for max_duration) needs flooring. These are the worker's initial
// tunables at startup.
const (
	DefaultMinDurationMs = 100
	DefaultMaxDurationMs = 500
	DefaultErrorRate     = 0.0
)

// Tunables is the worker's mutable, process-wide latency/error-rate record.
// /setup replaces it atomically; /work reads it independently for its two
// components (durations, error rate need not come from the same snapshot).
type Tunables struct {
	mu            sync.RWMutex
	minDurationMs uint64
	maxDurationMs uint64
	errorRate     float64
}

// NewTunables returns a Tunables record initialized to the documented
// defaults.
func NewTunables() *Tunables {
	return &Tunables{
		minDurationMs: DefaultMinDurationMs,
		maxDurationMs: DefaultMaxDurationMs,
		errorRate:     DefaultErrorRate,
	}
}

// Durations returns the current (min, max) duration bounds in milliseconds.
func (t *Tunables) Durations() (min, max uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.minDurationMs, t.maxDurationMs
}

// ErrorRate returns the current error probability.
func (t *Tunables) ErrorRate() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errorRate
}

// Set atomically replaces all three tunables.
func (t *Tunables) Set(min, max uint64, errorRate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.minDurationMs = min
	t.maxDurationMs = max
	t.errorRate = errorRate
}
