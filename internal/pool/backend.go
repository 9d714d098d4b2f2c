package pool

import (
	"fmt"
	"net/netip"
)

// Backend is one worker in the dispatcher's fixed pool, identified by a
// host:port address. The in-flight counter is mutated exclusively through
// the Pool that owns it; callers never touch it directly.
type Backend struct {
	address     string
	connections int
}

// newBackend validates the address and returns a Backend with a zero
// in-flight counter. The address must be a literal IP:port; hostnames like
// "localhost:3000" are rejected, since they aren't a valid socket address.
// This is the only place construction can fail.
func newBackend(address string) (*Backend, error) {
	if address == "" {
		return nil, fmt.Errorf("backend address cannot be empty")
	}
	if _, err := netip.ParseAddrPort(address); err != nil {
		return nil, fmt.Errorf("invalid backend address %q: %w", address, err)
	}
	return &Backend{address: address}, nil
}

// Address returns the backend's host:port.
func (b *Backend) Address() string {
	return b.address
}

// Connections returns the current in-flight counter. Callers must hold
// the owning Pool's lock.
func (b *Backend) Connections() int {
	return b.connections
}

func (b *Backend) increment() {
	b.connections++
}

// decrement is a no-op at zero; the counter never goes negative.
func (b *Backend) decrement() {
	if b.connections > 0 {
		b.connections--
	}
}
