package tcc

import (
	"sync/atomic"

	"github.com/wippyai/tcc-runtime/errors"
)

// guardHeld is the process-wide exclusivity flag. The native compiler keeps
// global mutable state (default search paths among it), so at most one
// logical session may be live at a time.
var guardHeld atomic.Bool

// Guard is the permission token for one compiler session. All contexts are
// created under a live guard; releasing it re-enables acquisition for the
// next session.
type Guard struct {
	released atomic.Bool
	refs     atomic.Int32
}

// Acquire takes the process-wide guard. It fails with GuardUnavailable while
// another guard is live.
func Acquire() (*Guard, error) {
	if !guardHeld.CompareAndSwap(false, true) {
		return nil, errors.GuardUnavailable()
	}
	return &Guard{}, nil
}

// Release gives the guard back. It fails while contexts or relocated images
// created under it are still alive, and is a no-op on an already released
// guard.
func (g *Guard) Release() error {
	if g.released.Load() {
		return nil
	}
	if n := g.refs.Load(); n > 0 {
		return errors.Misuse(errors.PhaseGuard, "release with %d live contexts", n)
	}
	if g.released.CompareAndSwap(false, true) {
		guardHeld.Store(false)
	}
	return nil
}

// retain records a value whose lifetime pins the guard.
func (g *Guard) retain() error {
	if g == nil || g.released.Load() {
		return errors.Misuse(errors.PhaseGuard, "guard is not live")
	}
	g.refs.Add(1)
	return nil
}

func (g *Guard) unretain() {
	g.refs.Add(-1)
}
