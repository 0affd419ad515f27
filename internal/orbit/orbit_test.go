package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	assert.False(t, c.Update())
	assert.InDelta(t, 5, c.Position.Z(), tol)
	assert.InDelta(t, 0, c.Position.X(), tol)
}

func TestRotateQuarterTurn(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Rotate(-math32.Pi/2, 0)
	assert.True(t, c.Update())
	assert.InDelta(t, 5, c.Position.X(), tol)
	assert.InDelta(t, 0, c.Position.Z(), tol)
	assert.InDelta(t, 5, c.Distance(), tol)

	// Input is consumed without damping.
	assert.False(t, c.Update())
}

func TestPolarClamp(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Rotate(0, 10)
	c.Update()
	assert.Greater(t, c.Position.Y(), float32(4.99))
	assert.InDelta(t, 5, c.Distance(), tol)
}

func TestDollyRespectsLimits(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.MinDistance = 2
	c.MaxDistance = 8

	c.Dolly(0.5)
	c.Update()
	assert.InDelta(t, 2.5, c.Distance(), tol)

	c.Dolly(0.1)
	c.Update()
	assert.InDelta(t, 2, c.Distance(), tol)

	c.Dolly(100)
	c.Update()
	assert.InDelta(t, 8, c.Distance(), tol)
}

func TestWheelZoomsIn(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Wheel(1)
	c.Update()
	assert.InDelta(t, 5*0.95, c.Distance(), tol)
	c.Wheel(-1)
	c.Update()
	assert.InDelta(t, 5, c.Distance(), tol)
}

func TestDampingDecays(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.EnableDamping = true
	c.Rotate(1, 0)

	assert.True(t, c.Update())
	first := c.Position
	assert.True(t, c.Update())
	assert.False(t, first.ApproxEqualThreshold(c.Position, 1e-6))

	for i := 0; i < 1000; i++ {
		c.Update()
	}
	assert.False(t, c.Update())
	assert.InDelta(t, 5, c.Distance(), tol)
}

func TestSetTargetOrbitsNewPoint(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetTarget(mgl32.Vec3{0, 1, 0})
	c.Update()
	assert.InDelta(t, math32.Sqrt(26), c.Distance(), tol)
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Pan(1, 0)
	c.Update()
	assert.InDelta(t, -1, c.Target.X(), tol)
	assert.InDelta(t, -1, c.Position.X(), tol)
	assert.InDelta(t, 5, c.Distance(), tol)
}

func TestRotatePixelsIgnoresZeroHeight(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.RotatePixels(100, 100, 0)
	assert.False(t, c.Update())
}
