package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 10
	gridMinorStep  = 0.5
	gridMajorEvery = 4
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	axisLineAlpha  = 200
)

var (
	gridMinor = rl.NewColor(128, 128, 128, gridMinorAlpha)
	gridMajor = rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX     = rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY     = rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ     = rl.NewColor(80, 80, 220, axisLineAlpha)
)

// drawGrid draws a reference grid on the XZ plane and the three axes through the origin.
// Must run inside BeginMode3D.
func drawGrid() {
	var start, end rl.Vector3
	steps := int(2 * gridExtent / gridMinorStep)
	for i := 0; i <= steps; i++ {
		v := -gridExtent + float32(i)*gridMinorStep
		c := gridMinor
		if i%gridMajorEvery == 0 {
			c = gridMajor
		}
		start.X, start.Y, start.Z = v, 0, -gridExtent
		end.X, end.Y, end.Z = v, 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = -gridExtent, v
		end.X, end.Z = gridExtent, v
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}
