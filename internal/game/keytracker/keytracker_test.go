package keytracker

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type fakeKeys map[ebiten.Key]bool

func (f fakeKeys) pressed(k ebiten.Key) bool { return f[k] }

func TestIsKeyJustPressed(t *testing.T) {
	keys := fakeKeys{}
	tr := New(keys.pressed)

	if tr.IsKeyJustPressed(ebiten.KeyEnter) {
		t.Error("released key reported as pressed")
	}
	keys[ebiten.KeyEnter] = true
	if !tr.IsKeyJustPressed(ebiten.KeyEnter) {
		t.Error("expected a press on the first frame the key is down")
	}
	if tr.IsKeyJustPressed(ebiten.KeyEnter) {
		t.Error("held key must not repeat")
	}
	keys[ebiten.KeyEnter] = false
	tr.IsKeyJustPressed(ebiten.KeyEnter)
	keys[ebiten.KeyEnter] = true
	if !tr.IsKeyJustPressed(ebiten.KeyEnter) {
		t.Error("expected a new press after release")
	}
}

func TestAnyJustPressed_PollsEveryKey(t *testing.T) {
	keys := fakeKeys{ebiten.KeyDigit1: true, ebiten.KeyNumpad1: true}
	tr := New(keys.pressed)

	if !tr.AnyJustPressed(ebiten.KeyDigit1, ebiten.KeyNumpad1) {
		t.Fatal("expected a press")
	}
	// Both keys were recorded, so releasing one must not retrigger the other.
	keys[ebiten.KeyDigit1] = false
	if tr.AnyJustPressed(ebiten.KeyDigit1, ebiten.KeyNumpad1) {
		t.Error("held numpad key retriggered")
	}
}

func TestResetAndIsPressed(t *testing.T) {
	keys := fakeKeys{ebiten.KeyW: true}
	tr := New(keys.pressed)

	tr.IsKeyJustPressed(ebiten.KeyW)
	tr.Reset()
	if !tr.IsKeyJustPressed(ebiten.KeyW) {
		t.Error("held key should count as new after Reset")
	}
	if !tr.IsPressed(ebiten.KeyA, ebiten.KeyW) {
		t.Error("IsPressed should see the held key")
	}
	if tr.IsPressed(ebiten.KeyA) {
		t.Error("IsPressed reported a released key")
	}
}
