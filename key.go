package skiff

// VirtualKey is the canonical, host-independent identity of a logical game
// action. Host key codes (native scancodes, web key-name strings) are mapped
// onto exactly one VirtualKey by the input bridge's translation table.
type VirtualKey uint8

const (
	KeyMoveLeft VirtualKey = iota
	KeyMoveRight
	KeyMoveUp
	KeyMoveDown
	KeyRotateLeft
	KeyRotateRight
	KeyBoost
	KeyFire
	KeyPickup
	KeyConfirm
	KeyPause

	// keyCount sizes per-key state arrays. Keep last.
	keyCount
)

var virtualKeyNames = [keyCount]string{
	KeyMoveLeft:    "MoveLeft",
	KeyMoveRight:   "MoveRight",
	KeyMoveUp:      "MoveUp",
	KeyMoveDown:    "MoveDown",
	KeyRotateLeft:  "RotateLeft",
	KeyRotateRight: "RotateRight",
	KeyBoost:       "Boost",
	KeyFire:        "Fire",
	KeyPickup:      "Pickup",
	KeyConfirm:     "Confirm",
	KeyPause:       "Pause",
}

// String returns the action name used in key-layout config files.
func (k VirtualKey) String() string {
	if k < keyCount {
		return virtualKeyNames[k]
	}
	return "Unknown"
}

// virtualKeyByName is the reverse lookup used when parsing layout config.
var virtualKeyByName = func() map[string]VirtualKey {
	m := make(map[string]VirtualKey, keyCount)
	for k, name := range virtualKeyNames {
		m[name] = VirtualKey(k)
	}
	return m
}()

// KeyState is the per-frame state of a VirtualKey.
//
// JustPressed and JustReleased are edge states: they hold for exactly one
// frame, until InputState.EndFrame collapses them to Held and Up.
type KeyState uint8

const (
	KeyUp           KeyState = iota // not held, no edge this frame
	KeyJustPressed                  // went down this frame (also counts as held)
	KeyHeld                         // held since a previous frame
	KeyJustReleased                 // went up this frame
)

// String returns a short name for debugging.
func (s KeyState) String() string {
	switch s {
	case KeyJustPressed:
		return "JustPressed"
	case KeyHeld:
		return "Held"
	case KeyJustReleased:
		return "JustReleased"
	default:
		return "Up"
	}
}
