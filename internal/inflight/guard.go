// Package inflight enforces the one-request-at-a-time discipline each
// engine follows for its gateway calls, and detects responses that
// resolve after their owning state has been reset.
package inflight

import "sync"

// Token identifies the engine epoch a request was issued under. A
// response may only be applied while its token is still live.
type Token uint64

// Guard is a per-engine request gate. At most one caller holds it at a
// time; Invalidate bumps the epoch so responses issued before a reset
// are dropped instead of landing on fresh state.
//
// The zero value is ready to use.
type Guard struct {
	mu    sync.Mutex
	busy  bool
	epoch uint64
}

// TryAcquire claims the guard. It returns a release closure to be
// deferred by the caller, the epoch token for the request about to be
// issued, and whether the claim succeeded. A false return means a
// request is already pending.
func (g *Guard) TryAcquire() (release func(), tok Token, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy {
		return nil, 0, false
	}
	g.busy = true
	tok = Token(g.epoch)

	var once sync.Once
	release = func() {
		once.Do(func() {
			g.mu.Lock()
			g.busy = false
			g.mu.Unlock()
		})
	}
	return release, tok, true
}

// Live reports whether tok belongs to the current epoch. A caller whose
// request resolved must check this before applying the result.
func (g *Guard) Live(tok Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(tok) == g.epoch
}

// Invalidate starts a new epoch. Any request issued before the call
// becomes stale: its token stops being live and its result must be
// discarded.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.epoch++
}

// Busy reports whether a request is currently pending.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
