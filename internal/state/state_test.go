package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerStartsInMenu(t *testing.T) {
	m := NewManager()
	assert.Equal(t, Menu, m.Current())
	_, ok := m.Previous()
	assert.False(t, ok)
	assert.False(t, m.IsPlaying())
}

func TestTransitionGraph(t *testing.T) {
	legal := map[GameState][]GameState{
		Menu:     {Playing, Settings},
		Settings: {Menu},
		Playing:  {Paused, GameOver, Victory},
		Paused:   {Playing, Menu},
		GameOver: {Menu},
		Victory:  {Menu},
	}
	all := []GameState{Menu, Playing, Paused, Settings, GameOver, Victory}

	for _, from := range all {
		for _, to := range all {
			want := from == to
			for _, s := range legal[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, CanChange(from, to), "%s -> %s", from, to)
		}
	}
}

func TestChange(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Change(Playing))
	require.NoError(t, m.Change(Paused))

	assert.Equal(t, Paused, m.Current())
	prev, ok := m.Previous()
	assert.True(t, ok)
	assert.Equal(t, Playing, prev)

	err := m.Change(Victory)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Contains(t, err.Error(), "paused -> victory")
	assert.Equal(t, Paused, m.Current(), "illegal change leaves the state alone")

	require.NoError(t, m.Change(Menu))
	assert.True(t, m.Is(Menu))
}

func TestChangeToSameStateIsNoop(t *testing.T) {
	m := NewManager()
	calls := 0
	m.OnChange(func(from, to GameState) { calls++ })

	require.NoError(t, m.Change(Menu))
	assert.Equal(t, 0, calls)
	_, ok := m.Previous()
	assert.False(t, ok)
}

func TestListenersSeeEveryChange(t *testing.T) {
	m := NewManager()
	var seen []string
	m.OnChange(func(from, to GameState) { seen = append(seen, from.String()+">"+to.String()) })

	require.NoError(t, m.Change(Playing))
	require.NoError(t, m.Change(GameOver))
	require.NoError(t, m.Change(Menu))
	assert.Equal(t, []string{"menu>playing", "playing>game_over", "game_over>menu"}, seen)

	m.Reset()
	assert.Equal(t, Menu, m.Current())
	_, ok := m.Previous()
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "victory", Victory.String())
	assert.Equal(t, "state(42)", GameState(42).String())
}
