package graphics

import (
	"log/slog"
	"runtime"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"ring-configurator/internal/scenegraph"
	"ring-configurator/internal/viewer"
)

// Renderer draws scenegraph meshes with raylib. Meshes are uploaded to the GPU the first
// time they are drawn, after the window and GL context exist, and stay cached until
// Dispose or Close. All methods must run on the window goroutine.
type Renderer struct {
	// ShowGrid draws a reference grid and axes under the scene.
	ShowGrid bool

	log    *slog.Logger
	meshes map[*scenegraph.Mesh]rl.Mesh
	lit    *litShader
	mtl    rl.Material
	ready  bool

	width, height int
}

// NewRenderer returns a renderer with nothing uploaded.
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{log: log, meshes: make(map[*scenegraph.Mesh]rl.Mesh)}
}

// SetSize records the drawing buffer size and resizes the window if it differs.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	if !rl.IsWindowReady() {
		return
	}
	if rl.GetScreenWidth() != width || rl.GetScreenHeight() != height {
		rl.SetWindowSize(width, height)
	}
}

func (r *Renderer) ensureMaterial() {
	if r.ready {
		return
	}
	r.ready = true
	r.mtl = rl.LoadMaterialDefault()
	if lit, ok := loadLitShader(); ok {
		r.lit = lit
		r.mtl.Shader = lit.shader
	} else {
		r.log.Warn("lit shader failed to compile, using raylib default shader")
	}
}

// upload copies m to the GPU. Go-owned arrays are pinned for the duration of the call and
// cleared afterwards, so raylib keeps only its own buffers.
func (r *Renderer) upload(m *scenegraph.Mesh) (rl.Mesh, bool) {
	if gm, ok := r.meshes[m]; ok {
		return gm, true
	}
	vertices, normals, indices := meshBuffers(m)
	if len(vertices) == 0 {
		return rl.Mesh{}, false
	}

	gm := rl.Mesh{
		VertexCount:   int32(len(vertices) / 3),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      unsafe.SliceData(vertices),
		Normals:       unsafe.SliceData(normals),
	}
	var pin runtime.Pinner
	pin.Pin(gm.Vertices)
	pin.Pin(gm.Normals)
	if len(indices) > 0 {
		gm.Indices = unsafe.SliceData(indices)
		pin.Pin(gm.Indices)
	}
	rl.UploadMesh(&gm, false)
	pin.Unpin()
	gm.Vertices, gm.Normals, gm.Indices = nil, nil, nil

	r.meshes[m] = gm
	r.log.Debug("mesh uploaded", "mesh", m.Name, "vertices", gm.VertexCount, "triangles", gm.TriangleCount)
	return gm, true
}

// Render draws every mesh under scene from cam, lit by lights.
func (r *Renderer) Render(scene *scenegraph.Node, cam viewer.Camera, lights []viewer.Light) {
	r.ensureMaterial()
	if r.lit != nil {
		r.lit.setUniforms(cam.Position, packLights(lights))
	}

	rl.BeginMode3D(toCamera3D(cam))
	// BeginMode3D derives aspect and clip planes itself; use the viewer camera's instead.
	rl.SetMatrixProjection(toMatrix(cam.ProjectionMatrix()))
	rl.SetMatrixModelview(toMatrix(cam.ViewMatrix()))

	if r.ShowGrid {
		drawGrid()
	}

	albedo := r.mtl.GetMap(rl.MapAlbedo)
	scene.Walk(func(n *scenegraph.Node, world mgl32.Mat4) bool {
		if len(n.Meshes) == 0 {
			return true
		}
		transform := toMatrix(world)
		for _, m := range n.Meshes {
			gm, ok := r.upload(m)
			if !ok {
				continue
			}
			albedo.Color = toColor(m.Color)
			rl.DrawMesh(gm, r.mtl, transform)
		}
		return true
	})
	rl.EndMode3D()
}

// Dispose unloads the GPU buffers of every mesh in n's subtree.
func (r *Renderer) Dispose(n *scenegraph.Node) {
	for _, m := range n.MeshList() {
		gm, ok := r.meshes[m]
		if !ok {
			continue
		}
		rl.UnloadMesh(&gm)
		delete(r.meshes, m)
	}
}

// Uploaded returns how many meshes are resident on the GPU.
func (r *Renderer) Uploaded() int {
	return len(r.meshes)
}

// Close unloads all meshes and the shared material, including its shader.
func (r *Renderer) Close() {
	for m, gm := range r.meshes {
		rl.UnloadMesh(&gm)
		delete(r.meshes, m)
	}
	if r.ready {
		rl.UnloadMaterial(r.mtl)
		r.ready = false
		r.lit = nil
	}
}
