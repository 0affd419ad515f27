package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"ring-configurator/internal/orbit"
)

// panSpeed converts a pointer drag in pixels to world units at unit camera distance.
const panSpeed = 0.002

// Input feeds mouse drags and the wheel into orbit controls: left drag orbits, right drag
// pans, the wheel zooms. Captured, when set, reports that the pointer belongs to an overlay
// (a button or the console), in which case a new drag is not started.
type Input struct {
	Controls *orbit.Controls
	Captured func() bool

	orbiting bool
	panning  bool
}

// NewInput returns an Input driving c.
func NewInput(c *orbit.Controls, captured func() bool) *Input {
	return &Input{Controls: c, Captured: captured}
}

// Update reads this frame's mouse state. height is the viewport height in pixels.
func (in *Input) Update(height int) {
	captured := in.Captured != nil && in.Captured()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !captured {
		in.orbiting = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.orbiting = false
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !captured {
		in.panning = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		in.panning = false
	}

	d := rl.GetMouseDelta()
	if in.orbiting {
		in.Controls.RotatePixels(d.X, d.Y, height)
	}
	if in.panning {
		k := panSpeed * in.Controls.Distance()
		in.Controls.Pan(d.X*k, d.Y*k)
	}
	if !captured {
		in.Controls.Wheel(rl.GetMouseWheelMove())
	}
}
