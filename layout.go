package skiff

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Layout is a key-layout mapping loaded from config: action name to host key
// name. It is host-agnostic until resolved into a Table for a concrete host.
type Layout map[string]string

// ParseLayout parses a JSON key-layout config of the form
//
//	{"MoveLeft": "A", "Fire": "Space", "Pause": "Escape"}
//
// Unknown action names are an error; the key name side is validated when the
// layout is resolved against a host code space.
func ParseLayout(data []byte) (Layout, error) {
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse key layout: %w", err)
	}
	for action := range layout {
		if _, ok := virtualKeyByName[action]; !ok {
			return nil, fmt.Errorf("parse key layout: unknown action %q", action)
		}
	}
	return layout, nil
}

// DesktopTable resolves the layout against the native key-name space and
// returns a translation table over ebiten key codes. Pure: no global state.
func (l Layout) DesktopTable() (Table[ebiten.Key], error) {
	m := make(map[ebiten.Key]VirtualKey, len(l))
	for action, keyName := range l {
		code, ok := desktopKeyByName[keyName]
		if !ok {
			return Table[ebiten.Key]{}, fmt.Errorf("key layout: unknown desktop key %q for action %q", keyName, action)
		}
		m[code] = virtualKeyByName[action]
	}
	return NewTable(m), nil
}

// WebTable resolves the layout against the browser KeyboardEvent.code space.
// Key names are passed through verbatim; the browser defines the vocabulary.
func (l Layout) WebTable() Table[string] {
	m := make(map[string]VirtualKey, len(l))
	for action, keyName := range l {
		m[keyName] = virtualKeyByName[action]
	}
	return NewTable(m)
}

// desktopKeyByName names the subset of native keys a layout may bind:
// letters, digits, arrows, and the usual control keys.
var desktopKeyByName = func() map[string]ebiten.Key {
	m := map[string]ebiten.Key{
		"Space":      ebiten.KeySpace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"ShiftLeft":  ebiten.KeyShiftLeft,
		"ShiftRight": ebiten.KeyShiftRight,
		"Left":       ebiten.KeyArrowLeft,
		"Right":      ebiten.KeyArrowRight,
		"Up":         ebiten.KeyArrowUp,
		"Down":       ebiten.KeyArrowDown,
	}
	for i := 0; i < 26; i++ {
		m[string(rune('A'+i))] = ebiten.KeyA + ebiten.Key(i)
	}
	for i := 0; i < 10; i++ {
		m[string(rune('0'+i))] = ebiten.KeyDigit0 + ebiten.Key(i)
	}
	return m
}()

// DefaultDesktopTable returns the built-in native key bindings, used when no
// layout config is present or it fails to parse.
func DefaultDesktopTable() Table[ebiten.Key] {
	return NewTable(map[ebiten.Key]VirtualKey{
		ebiten.KeyArrowLeft:  KeyMoveLeft,
		ebiten.KeyA:          KeyMoveLeft,
		ebiten.KeyArrowRight: KeyMoveRight,
		ebiten.KeyD:          KeyMoveRight,
		ebiten.KeyArrowUp:    KeyMoveUp,
		ebiten.KeyW:          KeyMoveUp,
		ebiten.KeyArrowDown:  KeyMoveDown,
		ebiten.KeyS:          KeyMoveDown,
		ebiten.KeyQ:          KeyRotateLeft,
		ebiten.KeyE:          KeyRotateRight,
		ebiten.KeyShiftLeft:  KeyBoost,
		ebiten.KeySpace:      KeyFire,
		ebiten.KeyG:          KeyPickup,
		ebiten.KeyEnter:      KeyConfirm,
		ebiten.KeyEscape:     KeyPause,
	})
}

// DefaultWebTable returns the built-in browser bindings over
// KeyboardEvent.code strings, mirroring DefaultDesktopTable.
func DefaultWebTable() Table[string] {
	return NewTable(map[string]VirtualKey{
		"ArrowLeft":  KeyMoveLeft,
		"KeyA":       KeyMoveLeft,
		"ArrowRight": KeyMoveRight,
		"KeyD":       KeyMoveRight,
		"ArrowUp":    KeyMoveUp,
		"KeyW":       KeyMoveUp,
		"ArrowDown":  KeyMoveDown,
		"KeyS":       KeyMoveDown,
		"KeyQ":       KeyRotateLeft,
		"KeyE":       KeyRotateRight,
		"ShiftLeft":  KeyBoost,
		"Space":      KeyFire,
		"KeyG":       KeyPickup,
		"Enter":      KeyConfirm,
		"Escape":     KeyPause,
	})
}
