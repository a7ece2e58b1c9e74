package skiff

import (
	"sync"
	"time"
)

// moveThrottle bounds pointer-move volume from high-frequency sources: the
// bridge forwards at most one move per interval. This is a policy of the
// bridge boundary, not of the canonical input model.
const moveThrottle = 16 * time.Millisecond

// bridgeBufferCap bounds events held while no input state is attached.
const bridgeBufferCap = 256

// Table is a pure, total translation from a host-specific key code space to
// the canonical VirtualKey vocabulary. H is the host code type: ebiten.Key
// for the native desktop window, string key names for the browser bridge.
// Each host provides one table, selected at construction time.
type Table[H comparable] struct {
	m map[H]VirtualKey
}

// NewTable builds a translation table from an explicit mapping.
func NewTable[H comparable](mapping map[H]VirtualKey) Table[H] {
	m := make(map[H]VirtualKey, len(mapping))
	for code, k := range mapping {
		m[code] = k
	}
	return Table[H]{m: m}
}

// Translate maps a host code to its VirtualKey. Unmapped codes return
// ok=false and are ignored by the bridge; they are never an error.
func (t Table[H]) Translate(code H) (VirtualKey, bool) {
	k, ok := t.m[code]
	return k, ok
}

// Codes returns every host code the table maps, in no particular order.
// The desktop host polls exactly this set each tick.
func (t Table[H]) Codes() []H {
	codes := make([]H, 0, len(t.m))
	for c := range t.m {
		codes = append(codes, c)
	}
	return codes
}

// Bridge translates host key and pointer events into the canonical input
// model. Host callbacks may arrive on any goroutine; the bridge only ever
// enqueues into the attached InputState's thread-safe pending queue.
//
// Events received while no InputState is attached are buffered (bounded at
// bridgeBufferCap, oldest dropped first) and flushed on Attach.
type Bridge[H comparable] struct {
	table Table[H]

	mu       sync.Mutex
	state    *InputState
	buffered []inputEvent
	lastMove time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewBridge creates a bridge over the given translation table. No input
// state is attached yet; events are buffered until Attach.
func NewBridge[H comparable](table Table[H]) *Bridge[H] {
	return &Bridge[H]{table: table, now: time.Now}
}

// Table returns the bridge's translation table.
func (b *Bridge[H]) Table() Table[H] {
	return b.table
}

// Attach connects the bridge to an input state and flushes any buffered
// events into it, in arrival order.
func (b *Bridge[H]) Attach(state *InputState) {
	b.mu.Lock()
	b.state = state
	buffered := b.buffered
	b.buffered = nil
	b.mu.Unlock()

	for _, ev := range buffered {
		state.queue(ev)
	}
}

// Detach disconnects the current input state. Subsequent events buffer again.
func (b *Bridge[H]) Detach() {
	b.mu.Lock()
	b.state = nil
	b.mu.Unlock()
}

// OnKeyDown translates and forwards a host key-down. Unmapped codes are
// silently dropped.
func (b *Bridge[H]) OnKeyDown(code H) {
	if k, ok := b.table.Translate(code); ok {
		b.deliver(inputEvent{kind: eventKeyDown, key: k})
	}
}

// OnKeyUp translates and forwards a host key-up. Unmapped codes are
// silently dropped.
func (b *Bridge[H]) OnKeyUp(code H) {
	if k, ok := b.table.Translate(code); ok {
		b.deliver(inputEvent{kind: eventKeyUp, key: k})
	}
}

// OnMouseMove forwards a pointer position in logical canvas coordinates,
// throttled to at most one move per ~16ms. Throttled moves are dropped; the
// next accepted move carries the current position, so the model converges.
func (b *Bridge[H]) OnMouseMove(x, y float64) {
	b.mu.Lock()
	now := b.now()
	if now.Sub(b.lastMove) < moveThrottle {
		b.mu.Unlock()
		return
	}
	b.lastMove = now
	b.mu.Unlock()
	b.deliver(inputEvent{kind: eventMouseMove, x: x, y: y})
}

// OnMouseClick forwards a pointer click.
func (b *Bridge[H]) OnMouseClick() {
	b.deliver(inputEvent{kind: eventMouseClick})
}

// deliver routes an event to the attached state, or buffers it.
func (b *Bridge[H]) deliver(ev inputEvent) {
	b.mu.Lock()
	state := b.state
	if state == nil {
		if len(b.buffered) >= bridgeBufferCap {
			copy(b.buffered, b.buffered[1:])
			b.buffered = b.buffered[:len(b.buffered)-1]
		}
		b.buffered = append(b.buffered, ev)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	state.queue(ev)
}
