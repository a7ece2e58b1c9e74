package skiff

import "sync"

// eventKind discriminates queued host events.
type eventKind uint8

const (
	eventKeyDown eventKind = iota
	eventKeyUp
	eventMouseMove
	eventMouseClick
)

// inputEvent is one translated host event waiting for the frame thread.
type inputEvent struct {
	kind eventKind
	key  VirtualKey
	x, y float64
}

// InputState is the canonical input model: a mapping from VirtualKey to its
// per-frame KeyState, a pointer position in logical canvas coordinates, and a
// click-pending flag consumed once by the next simulate phase.
//
// Host event producers (window callbacks, the web bridge) may run on other
// goroutines; they only ever append to the pending queue under the mutex.
// Drain, EndFrame, and all queries happen exclusively on the frame thread.
type InputState struct {
	mu      sync.Mutex
	pending []inputEvent

	keys             [keyCount]KeyState
	pointer          Vec2
	canvasW, canvasH float64
	clickPending     bool
}

// NewInputState creates an input state for a logical canvas of the given size.
// The pointer position is clamped to this canvas.
func NewInputState(canvasW, canvasH float64) *InputState {
	return &InputState{
		pending: make([]inputEvent, 0, 64),
		canvasW: canvasW,
		canvasH: canvasH,
	}
}

// --- Producer side (any goroutine) ---

// QueueKeyDown records a key-down for a virtual key. Applied on the next Drain.
func (in *InputState) QueueKeyDown(k VirtualKey) {
	in.queue(inputEvent{kind: eventKeyDown, key: k})
}

// QueueKeyUp records a key-up for a virtual key. Applied on the next Drain.
func (in *InputState) QueueKeyUp(k VirtualKey) {
	in.queue(inputEvent{kind: eventKeyUp, key: k})
}

// QueueMouseMove records a pointer position in logical canvas coordinates.
// The position is clamped to the canvas bounds when drained.
func (in *InputState) QueueMouseMove(x, y float64) {
	in.queue(inputEvent{kind: eventMouseMove, x: x, y: y})
}

// QueueMouseClick records a click. The click-pending flag is set on the next
// Drain and consumed once by TakeClick or cleared by EndFrame.
func (in *InputState) QueueMouseClick() {
	in.queue(inputEvent{kind: eventMouseClick})
}

func (in *InputState) queue(ev inputEvent) {
	in.mu.Lock()
	in.pending = append(in.pending, ev)
	in.mu.Unlock()
}

// --- Frame thread ---

// Drain applies all buffered host events to the key states and pointer.
// Called exactly once per tick, before gameplay systems run.
func (in *InputState) Drain() {
	in.mu.Lock()
	events := in.pending
	in.pending = in.pending[len(in.pending):]
	in.mu.Unlock()

	for _, ev := range events {
		switch ev.kind {
		case eventKeyDown:
			if s := in.keys[ev.key]; s == KeyUp || s == KeyJustReleased {
				in.keys[ev.key] = KeyJustPressed
			}
			// Repeats while already held keep the current state.
		case eventKeyUp:
			if s := in.keys[ev.key]; s == KeyJustPressed || s == KeyHeld {
				in.keys[ev.key] = KeyJustReleased
			}
		case eventMouseMove:
			in.pointer.X = clamp(ev.x, 0, in.canvasW)
			in.pointer.Y = clamp(ev.y, 0, in.canvasH)
		case eventMouseClick:
			in.clickPending = true
		}
	}
}

// EndFrame collapses edge states: JustPressed becomes Held, JustReleased
// becomes Up, and the click flag is cleared. Must be called exactly once per
// tick, after gameplay systems have observed the frame's edges, never before.
func (in *InputState) EndFrame() {
	for k := range in.keys {
		switch in.keys[k] {
		case KeyJustPressed:
			in.keys[k] = KeyHeld
		case KeyJustReleased:
			in.keys[k] = KeyUp
		}
	}
	in.clickPending = false
}

// State returns the full tri-state of a virtual key.
func (in *InputState) State(k VirtualKey) KeyState {
	return in.keys[k]
}

// Held reports whether the key is currently down. True from the key-down
// frame (inclusive) to the key-up frame (exclusive).
func (in *InputState) Held(k VirtualKey) bool {
	s := in.keys[k]
	return s == KeyJustPressed || s == KeyHeld
}

// JustPressed reports whether the key went down this frame. True for exactly
// one frame per press, assuming EndFrame is called once per tick.
func (in *InputState) JustPressed(k VirtualKey) bool {
	return in.keys[k] == KeyJustPressed
}

// JustReleased reports whether the key went up this frame.
func (in *InputState) JustReleased(k VirtualKey) bool {
	return in.keys[k] == KeyJustReleased
}

// Axis returns -1, 0, or +1 from a negative/positive key pair. Both held
// resolves to +1, matching the original controller behavior.
func (in *InputState) Axis(negative, positive VirtualKey) float64 {
	switch {
	case in.Held(positive):
		return 1
	case in.Held(negative):
		return -1
	default:
		return 0
	}
}

// Pointer returns the pointer position in logical canvas pixels.
func (in *InputState) Pointer() Vec2 {
	return in.pointer
}

// NormalizedPointer returns the pointer position in [0, 1] normalized canvas
// space. A pointer at (800, 480) on a 1600x960 canvas yields (0.5, 0.5).
func (in *InputState) NormalizedPointer() Vec2 {
	return Vec2{X: in.pointer.X / in.canvasW, Y: in.pointer.Y / in.canvasH}
}

// TakeClick consumes the pending click, if any. At most one caller per
// simulate phase observes true for a given click.
func (in *InputState) TakeClick() bool {
	if in.clickPending {
		in.clickPending = false
		return true
	}
	return false
}

// ClickPending reports whether a click is waiting without consuming it.
func (in *InputState) ClickPending() bool {
	return in.clickPending
}

// CanvasSize returns the logical canvas dimensions the pointer is clamped to.
func (in *InputState) CanvasSize() (w, h float64) {
	return in.canvasW, in.canvasH
}
