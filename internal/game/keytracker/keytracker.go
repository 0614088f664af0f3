// Package keytracker turns polled key state into edge-triggered presses.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PressedFunc reports whether a key is held this frame.
type PressedFunc func(ebiten.Key) bool

// Tracker remembers the previous state of every key it has been asked about.
// Poll each key once per frame.
type Tracker struct {
	pressed PressedFunc
	prev    map[ebiten.Key]bool
}

// New creates a tracker over pressed; nil uses ebiten.IsKeyPressed.
func New(pressed PressedFunc) *Tracker {
	if pressed == nil {
		pressed = ebiten.IsKeyPressed
	}
	return &Tracker{pressed: pressed, prev: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if the key was not pressed last poll but is pressed now.
func (t *Tracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := t.pressed(key)
	justPressed := pressed && !t.prev[key]
	t.prev[key] = pressed
	return justPressed
}

// AnyJustPressed polls every key and reports whether at least one went down.
func (t *Tracker) AnyJustPressed(keys ...ebiten.Key) bool {
	hit := false
	for _, k := range keys {
		if t.IsKeyJustPressed(k) {
			hit = true
		}
	}
	return hit
}

// IsPressed reports the current held state without touching the history.
func (t *Tracker) IsPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if t.pressed(k) {
			return true
		}
	}
	return false
}

// Reset forgets all history, so held keys count as new presses.
func (t *Tracker) Reset() {
	clear(t.prev)
}
