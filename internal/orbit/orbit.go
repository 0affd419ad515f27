package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// polarEps keeps the camera off the poles where the up vector degenerates.
	polarEps = 1e-6
	// moveEps is the squared distance below which Update reports no change.
	moveEps = 1e-6
)

// Controls orbits a camera position around Target using spherical coordinates.
// Rotate, Dolly and Pan accumulate input; Update applies it once per frame. With damping
// enabled, accumulated input decays by DampingFactor each Update, giving the camera inertia.
type Controls struct {
	Target   mgl32.Vec3
	Position mgl32.Vec3

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	pan        mgl32.Vec3
}

// New returns controls for a camera at position looking at target. Damping is off, matching
// the common orbit-control default; distance is unbounded.
func New(position, target mgl32.Vec3) *Controls {
	return &Controls{
		Target:        target,
		Position:      position,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		scale:         1,
	}
}

// SetTarget moves the orbit target without moving the camera.
func (c *Controls) SetTarget(v mgl32.Vec3) {
	c.Target = v
}

// Rotate queues an azimuth (theta) and polar (phi) rotation, in radians.
// Positive theta orbits the camera to the left around the target.
func (c *Controls) Rotate(theta, phi float32) {
	c.deltaTheta -= theta * c.RotateSpeed
	c.deltaPhi -= phi * c.RotateSpeed
}

// RotatePixels converts a pointer drag of dx, dy pixels on a viewport of the given height
// into a rotation: a drag across the full height turns the camera a full circle.
func (c *Controls) RotatePixels(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	h := float32(height)
	c.Rotate(2*math32.Pi*dx/h, 2*math32.Pi*dy/h)
}

// Wheel queues a dolly from a scroll amount. Positive delta moves the camera closer.
func (c *Controls) Wheel(delta float32) {
	if delta == 0 {
		return
	}
	step := math32.Pow(0.95, c.ZoomSpeed*math32.Abs(delta))
	if delta > 0 {
		c.Dolly(step)
	} else {
		c.Dolly(1 / step)
	}
}

// Dolly scales the camera distance by factor on the next Update (factor < 1 zooms in).
func (c *Controls) Dolly(factor float32) {
	if factor <= 0 {
		return
	}
	c.scale *= factor
}

// Pan queues a translation of both camera and target along the view plane, in world units.
func (c *Controls) Pan(dx, dy float32) {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	right := forward.Cross(up)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	camUp := right.Cross(forward)
	c.pan = c.pan.Add(right.Mul(-dx * c.PanSpeed)).Add(camUp.Mul(dy * c.PanSpeed))
}

// Distance returns the current camera-to-target distance.
func (c *Controls) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}

// Update applies queued input to Position and Target. It returns true if the camera moved.
func (c *Controls) Update() bool {
	offset := c.Position.Sub(c.Target)
	radius, theta, phi := toSpherical(offset)

	factor := float32(1)
	if c.EnableDamping {
		factor = c.DampingFactor
	}
	theta += c.deltaTheta * factor
	phi += c.deltaPhi * factor
	phi = clamp(phi, c.MinPolarAngle, c.MaxPolarAngle)
	phi = clamp(phi, polarEps, math32.Pi-polarEps)

	radius = clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.pan.Mul(factor))
	} else {
		c.Target = c.Target.Add(c.pan)
	}

	prev := c.Position
	c.Position = c.Target.Add(fromSpherical(radius, theta, phi))

	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.pan = c.pan.Mul(1 - c.DampingFactor)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.pan = mgl32.Vec3{}
	}
	c.scale = 1

	d := c.Position.Sub(prev)
	return d.Dot(d) > moveEps
}

// toSpherical returns radius, azimuth around +Y measured from +Z, and polar angle from +Y.
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, math32.Pi / 2
	}
	theta = math32.Atan2(v.X(), v.Z())
	phi = math32.Acos(clamp(v.Y()/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
