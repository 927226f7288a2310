package loader

import "sync/atomic"

// flightGuard provides non-blocking acquire semantics for the
// one-in-flight-fetch rule. A failed acquire means a fetch is already
// outstanding and the trigger should be dropped, not queued.
type flightGuard struct {
	state atomic.Int32 // 0 = idle, 1 = fetch in flight
}

// TryAcquire attempts to claim the in-flight slot without blocking.
func (g *flightGuard) TryAcquire() bool {
	return g.state.CompareAndSwap(0, 1)
}

// Release frees the slot. Must only be called by the claimant.
func (g *flightGuard) Release() {
	g.state.Store(0)
}

// Held reports whether a fetch is currently in flight.
func (g *flightGuard) Held() bool {
	return g.state.Load() == 1
}
