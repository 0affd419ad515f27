package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightKind selects how a Light contributes to shading.
type LightKind int

const (
	Ambient LightKind = iota
	Directional
	Point
	Spot
)

func (k LightKind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	}
	return "unknown"
}

// Light is one member of the lighting rig. Directional lights shine from Position toward
// the origin. Distance 0 means unlimited range; Angle and Penumbra apply to spots only.
type Light struct {
	Kind      LightKind
	Color     [3]float32
	Intensity float32
	Position  mgl32.Vec3
	Distance  float32
	Decay     float32
	Angle     float32
	Penumbra  float32
}

var white = [3]float32{1, 1, 1}

// DefaultLights returns the fixed rig: ambient, key and fill directionals, a point light
// and an overhead spot.
func DefaultLights() []Light {
	return []Light{
		{Kind: Ambient, Color: white, Intensity: 1},
		{Kind: Directional, Color: white, Intensity: 1, Position: mgl32.Vec3{1, 1, 1}},
		{Kind: Directional, Color: white, Intensity: 0.5, Position: mgl32.Vec3{-1, -1, -1}},
		{Kind: Point, Color: white, Intensity: 1, Position: mgl32.Vec3{5, 5, 5}, Distance: 100, Decay: 2},
		{Kind: Spot, Color: white, Intensity: 1, Position: mgl32.Vec3{0, 5, 0}, Distance: 200, Decay: 2, Angle: math.Pi / 6, Penumbra: 0.1},
	}
}
