package skiff

import (
	"testing"
	"time"
)

func testWebTable() Table[string] {
	return NewTable(map[string]VirtualKey{
		"ArrowLeft": KeyMoveLeft,
		"Space":     KeyFire,
		"Escape":    KeyPause,
	})
}

func TestTableTranslate(t *testing.T) {
	table := testWebTable()

	tests := []struct {
		name   string
		code   string
		want   VirtualKey
		wantOK bool
	}{
		{"mapped", "Space", KeyFire, true},
		{"mapped arrow", "ArrowLeft", KeyMoveLeft, true},
		{"unmapped", "KeyZ", 0, false},
		{"empty code", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Translate(tt.code)
			if ok != tt.wantOK {
				t.Fatalf("Translate(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Translate(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestBridgeDropsUnmappedCodes(t *testing.T) {
	in := NewInputState(800, 480)
	b := NewBridge(testWebTable())
	b.Attach(in)

	b.OnKeyDown("KeyZ")
	b.OnKeyDown("F13")
	in.Drain()

	for k := VirtualKey(0); k < keyCount; k++ {
		if in.State(k) != KeyUp {
			t.Errorf("key %v changed state from an unmapped code", k)
		}
	}
}

func TestBridgeBuffersUntilAttach(t *testing.T) {
	b := NewBridge(testWebTable())

	// Host events arrive before the scene exists.
	b.OnKeyDown("Space")
	b.OnMouseClick()

	in := NewInputState(800, 480)
	b.Attach(in)
	in.Drain()

	if !in.JustPressed(KeyFire) {
		t.Error("buffered key-down should flush on attach")
	}
	if !in.ClickPending() {
		t.Error("buffered click should flush on attach")
	}
}

func TestBridgeBufferBounded(t *testing.T) {
	b := NewBridge(testWebTable())

	// Overflow the buffer with key-downs, then send the one event that
	// must survive: only the newest bridgeBufferCap events are kept.
	b.OnKeyDown("ArrowLeft")
	for i := 0; i < bridgeBufferCap; i++ {
		b.OnKeyDown("Space")
	}

	if n := len(b.buffered); n != bridgeBufferCap {
		t.Fatalf("buffered = %d events, want %d", n, bridgeBufferCap)
	}
	if b.buffered[0].key != KeyFire {
		t.Error("oldest event should have been dropped first")
	}
}

func TestBridgeDetach(t *testing.T) {
	in := NewInputState(800, 480)
	b := NewBridge(testWebTable())
	b.Attach(in)
	b.Detach()

	b.OnKeyDown("Space")
	in.Drain()
	if in.State(KeyFire) != KeyUp {
		t.Error("events after Detach must not reach the old state")
	}

	// Re-attach flushes what accumulated meanwhile.
	b.Attach(in)
	in.Drain()
	if !in.JustPressed(KeyFire) {
		t.Error("re-attach should flush events buffered while detached")
	}
}

func TestBridgeMoveThrottle(t *testing.T) {
	in := NewInputState(800, 480)
	b := NewBridge(testWebTable())
	b.Attach(in)

	now := time.Unix(0, 0)
	b.now = func() time.Time { return now }

	b.OnMouseMove(10, 10)
	now = now.Add(5 * time.Millisecond)
	b.OnMouseMove(20, 20) // within the window, dropped
	in.Drain()
	if got := in.Pointer(); got != (Vec2{10, 10}) {
		t.Errorf("Pointer = %v, want the first (unthrottled) move", got)
	}

	now = now.Add(moveThrottle)
	b.OnMouseMove(30, 30) // outside the window, delivered
	in.Drain()
	if got := in.Pointer(); got != (Vec2{30, 30}) {
		t.Errorf("Pointer = %v, want the move after the throttle window", got)
	}
}

func TestBridgeClickNotThrottled(t *testing.T) {
	in := NewInputState(800, 480)
	b := NewBridge(testWebTable())
	b.Attach(in)

	now := time.Unix(0, 0)
	b.now = func() time.Time { return now }

	b.OnMouseMove(10, 10)
	b.OnMouseClick() // immediately after a move; clicks never throttle
	in.Drain()
	if !in.ClickPending() {
		t.Error("click following a move must still be delivered")
	}
}
