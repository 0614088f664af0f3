package arena

import "magearena/internal/entities"

// TurnRate scales keyboard turning. Player.Rotate is not time based, so
// held keys pass Turn*dt*TurnRate to keep the turn speed frame-rate
// independent.
const TurnRate = 0.5

// Input is one frame of player intent, already decoded from the frontend's
// keys and mouse.
type Input struct {
	Forward float64 // 1 forward, -1 back
	Strafe  float64 // 1 right, -1 left
	Turn    float64 // 1 right, -1 left, held keys
	MouseDX float64 // pixels since last frame
	MouseDY float64

	Casts []entities.SpellKind // keyboard casts this frame

	// Edge-triggered actions.
	Enter    bool
	Escape   bool
	Resume   bool
	ToMenu   bool
	Settings bool
}
