package graphics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"ring-configurator/internal/scenegraph"
	"ring-configurator/internal/viewer"
)

// maxLights must match MAX_LIGHTS in the fragment shader.
const maxLights = 8

// Light kinds as the shader sees them.
const (
	shaderAmbient     = 0
	shaderDirectional = 1
	shaderPoint       = 2
	shaderSpot        = 3
)

// toMatrix converts a column-major mgl32 matrix to raylib's layout, which is also
// column-major: Mi holds element i of the flat array.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toColor(c [4]float32) rl.Color {
	b := func(f float32) uint8 {
		return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
	}
	return rl.NewColor(b(c[0]), b(c[1]), b(c[2]), b(c[3]))
}

func toCamera3D(cam viewer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.Up),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// meshBuffers flattens m into raylib's vertex arrays. raylib indices are 16-bit, so meshes
// with more vertices than that are expanded into unindexed triangles.
func meshBuffers(m *scenegraph.Mesh) (vertices, normals []float32, indices []uint16) {
	normal := func(i int) [3]float32 {
		if i < len(m.Normals) {
			return m.Normals[i]
		}
		return [3]float32{0, 1, 0}
	}
	appendVertex := func(i int) {
		p, n := m.Positions[i], normal(i)
		vertices = append(vertices, p[0], p[1], p[2])
		normals = append(normals, n[0], n[1], n[2])
	}

	if len(m.Indices) > 0 && len(m.Positions) > math.MaxUint16+1 {
		vertices = make([]float32, 0, len(m.Indices)*3)
		normals = make([]float32, 0, len(m.Indices)*3)
		for _, idx := range m.Indices {
			appendVertex(int(idx))
		}
		return vertices, normals, nil
	}

	vertices = make([]float32, 0, len(m.Positions)*3)
	normals = make([]float32, 0, len(m.Positions)*3)
	for i := range m.Positions {
		appendVertex(i)
	}
	if len(m.Indices) > 0 {
		indices = make([]uint16, len(m.Indices))
		for i, idx := range m.Indices {
			indices[i] = uint16(idx)
		}
	}
	return vertices, normals, indices
}

// lightBlock is the light rig packed into the shader's uniform arrays.
type lightBlock struct {
	count     float32
	params    []float32 // kind, intensity, distance, decay
	colors    []float32
	positions []float32
	cones     []float32 // cos(angle), cos(inner angle)
}

func packLights(lights []viewer.Light) lightBlock {
	if len(lights) > maxLights {
		lights = lights[:maxLights]
	}
	b := lightBlock{count: float32(len(lights))}
	for _, l := range lights {
		kind := float32(shaderAmbient)
		switch l.Kind {
		case viewer.Directional:
			kind = shaderDirectional
		case viewer.Point:
			kind = shaderPoint
		case viewer.Spot:
			kind = shaderSpot
		}
		b.params = append(b.params, kind, l.Intensity, l.Distance, l.Decay)
		b.colors = append(b.colors, l.Color[0], l.Color[1], l.Color[2])
		b.positions = append(b.positions, l.Position[0], l.Position[1], l.Position[2])
		outer := float32(math.Cos(float64(l.Angle)))
		inner := float32(math.Cos(float64(l.Angle * (1 - l.Penumbra))))
		b.cones = append(b.cones, outer, inner)
	}
	return b
}
