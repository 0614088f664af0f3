// Package state tracks which screen the game is on and which screen changes
// are allowed.
package state

import (
	"errors"
	"fmt"
)

// GameState is the top-level mode of the game.
type GameState int

const (
	Menu GameState = iota
	Playing
	Paused
	Settings
	GameOver
	Victory
)

var stateNames = [...]string{
	Menu:     "menu",
	Playing:  "playing",
	Paused:   "paused",
	Settings: "settings",
	GameOver: "game_over",
	Victory:  "victory",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// ErrIllegalTransition is returned by Change for moves the graph does not allow.
var ErrIllegalTransition = errors.New("illegal state transition")

var transitions = map[GameState][]GameState{
	Menu:     {Playing, Settings},
	Settings: {Menu},
	Playing:  {Paused, GameOver, Victory},
	Paused:   {Playing, Menu},
	GameOver: {Menu},
	Victory:  {Menu},
}

// CanChange reports whether from -> to is allowed. Staying put always is.
func CanChange(from, to GameState) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Listener is called after every effective state change.
type Listener func(from, to GameState)

// Manager holds the current and previous state. It is owned by the frame
// loop and not safe for concurrent use.
type Manager struct {
	current   GameState
	previous  GameState
	changed   bool
	listeners []Listener
}

// NewManager starts in Menu with no previous state.
func NewManager() *Manager {
	return &Manager{current: Menu}
}

func (m *Manager) Current() GameState { return m.current }

// Previous returns the state before the last change; ok is false before the
// first change.
func (m *Manager) Previous() (s GameState, ok bool) {
	return m.previous, m.changed
}

func (m *Manager) Is(s GameState) bool { return m.current == s }

func (m *Manager) IsPlaying() bool { return m.current == Playing }

// OnChange registers a listener.
func (m *Manager) OnChange(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Change moves to the given state. Changing to the current state does
// nothing; an illegal move returns ErrIllegalTransition and leaves the state
// unchanged.
func (m *Manager) Change(to GameState) error {
	from := m.current
	if from == to {
		return nil
	}
	if !CanChange(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	m.previous = from
	m.current = to
	m.changed = true
	for _, l := range m.listeners {
		l(from, to)
	}
	return nil
}

// Reset returns to Menu and forgets the history. Listeners are kept.
func (m *Manager) Reset() {
	m.current = Menu
	m.previous = Menu
	m.changed = false
}
