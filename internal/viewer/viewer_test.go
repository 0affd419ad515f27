package viewer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ring-configurator/internal/assembly"
	"ring-configurator/internal/config"
	"ring-configurator/internal/loader"
	"ring-configurator/internal/scenegraph"
)

type fakeSurface struct{ w, h int }

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

type fakeRenderer struct {
	sizes    [][2]int
	frames   int
	last     Camera
	lights   int
	disposed []*scenegraph.Mesh
}

func (r *fakeRenderer) SetSize(w, h int) { r.sizes = append(r.sizes, [2]int{w, h}) }

func (r *fakeRenderer) Render(_ *scenegraph.Node, cam Camera, lights []Light) {
	r.frames++
	r.last = cam
	r.lights = len(lights)
}

func (r *fakeRenderer) Dispose(n *scenegraph.Node) {
	r.disposed = append(r.disposed, n.MeshList()...)
}

// writeModel saves a one-triangle GLB named name into dir.
func writeModel(t *testing.T, dir, name string) {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos}}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = []int{0}
	require.NoError(t, gltf.SaveBinary(doc, filepath.Join(dir, name)))
}

func newViewer(t *testing.T, dir string) (*Viewer, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	v, err := New(&fakeSurface{w: 800, h: 600}, r, OptionsFromConfig(config.Default(), loader.New(dir, nil), nil))
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v, r
}

func settle(t *testing.T, v *Viewer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Assembly().Settle(ctx))
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, &fakeRenderer{}, Options{})
	assert.ErrorIs(t, err, ErrNoSurface)
	_, err = New(&fakeSurface{w: 1, h: 1}, nil, Options{})
	assert.ErrorIs(t, err, ErrNoRenderer)
	_, err = New(&fakeSurface{w: 10, h: 10}, &fakeRenderer{}, Options{})
	assert.ErrorIs(t, err, ErrNoLoader)
}

func TestNewInitialState(t *testing.T) {
	v, r := newViewer(t, t.TempDir())
	cam := v.Camera()
	assert.Equal(t, float32(800)/600, cam.Aspect)
	assert.Equal(t, float32(75), cam.Fovy)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, cam.Position)
	assert.Equal(t, [][2]int{{800, 600}}, r.sizes)
	assert.Len(t, v.Lights(), 5)
	assert.False(t, v.Rotating())
}

func TestResize(t *testing.T) {
	v, r := newViewer(t, t.TempDir())
	v.Resize(1920, 1080)
	assert.Equal(t, float32(1920)/1080, v.Camera().Aspect)
	assert.Equal(t, [2]int{1920, 1080}, r.sizes[len(r.sizes)-1])
	w, h := v.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	v.Resize(1920, 0)
	assert.Equal(t, float32(1920)/1080, v.Camera().Aspect)
	assert.Len(t, r.sizes, 2)
}

func TestDefaultLights(t *testing.T) {
	lights := DefaultLights()
	kinds := []LightKind{}
	for _, l := range lights {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []LightKind{Ambient, Directional, Directional, Point, Spot}, kinds)
	assert.Equal(t, float32(0.5), lights[2].Intensity)
	assert.InDelta(t, 0.5236, lights[4].Angle, 1e-4)
}

func TestEndToEndAssembly(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "newband6.glb")
	writeModel(t, dir, "gem2.glb")
	v, r := newViewer(t, dir)

	require.NoError(t, v.SetPart(context.Background(), assembly.Shank, "newband6.glb", [3]float32{1, 1, 1}))
	settle(t, v)
	require.NoError(t, v.SetPart(context.Background(), assembly.Head, "gem2.glb", [3]float32{0.4, 0.4, 0.4}))
	settle(t, v)
	v.Frame()

	g := v.Assembly().Group()
	require.NotNil(t, g)
	assert.Equal(t, 2, g.Len())
	shank, head := v.Assembly().Part(assembly.Shank), v.Assembly().Part(assembly.Head)
	assert.Equal(t, float32(1.5), head.Position.Y()-shank.Position.Y())
	assert.Equal(t, mgl32.Vec3{}, r.last.Target)
	assert.Equal(t, 5, r.lights)
}

func TestReplacementDisposesMeshes(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "newband6.glb")
	writeModel(t, dir, "shankdesign.glb")
	v, r := newViewer(t, dir)

	require.NoError(t, v.SetPart(context.Background(), assembly.Shank, "newband6.glb", [3]float32{1, 1, 1}))
	settle(t, v)
	old := v.Assembly().Part(assembly.Shank).MeshList()
	require.NoError(t, v.SetPart(context.Background(), assembly.Shank, "shankdesign.glb", [3]float32{0.7, 0.7, 0.7}))
	settle(t, v)

	assert.Equal(t, old, r.disposed)
	assert.Equal(t, 1, v.Assembly().Group().Len())
}

func TestFailedLoadKeepsDisplay(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "gem.glb")
	v, _ := newViewer(t, dir)

	require.NoError(t, v.SetPart(context.Background(), assembly.Head, "gem.glb", [3]float32{0.4, 0.4, 0.4}))
	settle(t, v)
	head := v.Assembly().Part(assembly.Head)

	require.NoError(t, v.SetPart(context.Background(), assembly.Head, "missing.glb", [3]float32{1, 1, 1}))
	settle(t, v)
	assert.Same(t, head, v.Assembly().Part(assembly.Head))
	assert.Equal(t, mgl32.Vec3{0.4, 0.4, 0.4}, head.Scale)
	assert.Nil(t, v.Assembly().Part(assembly.Shank))
}

func TestRotationToggle(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "newband6.glb")
	v, _ := newViewer(t, dir)

	// Without an assembly, rotation is a no-op.
	v.ToggleRotation()
	v.Frame()
	v.ToggleRotation()

	require.NoError(t, v.SetPart(context.Background(), assembly.Shank, "newband6.glb", [3]float32{1, 1, 1}))
	settle(t, v)
	g := v.Assembly().Group()

	yaw := func() float32 { return g.Rotation.Y() }
	rate := func() float32 {
		before := yaw()
		v.Frame()
		return yaw() - before
	}

	assert.Equal(t, float32(0), rate())
	assert.True(t, v.ToggleRotation())
	assert.InDelta(t, 0.01, rate(), 1e-6)
	assert.InDelta(t, 0.01, rate(), 1e-6)
	assert.False(t, v.ToggleRotation())
	assert.Equal(t, float32(0), rate())
	assert.InDelta(t, 0.02, yaw(), 1e-6)
}

func TestFrameAppliesCompletedLoads(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "gem.glb")
	v, r := newViewer(t, dir)

	require.NoError(t, v.SetPart(context.Background(), assembly.Head, "gem.glb", [3]float32{0.4, 0.4, 0.4}))
	deadline := time.Now().Add(5 * time.Second)
	for v.Assembly().Part(assembly.Head) == nil && time.Now().Before(deadline) {
		v.Frame()
		time.Sleep(time.Millisecond)
	}
	assert.NotNil(t, v.Assembly().Part(assembly.Head))
	assert.Greater(t, r.frames, 0)
}

func TestCameraMatrices(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{0, 0, 5}, Up: mgl32.Vec3{0, 1, 0}, Fovy: 75, Aspect: 2, Near: 0.1, Far: 1000}
	p := cam.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p.Z(), 1e-5)
	proj := cam.ProjectionMatrix()
	assert.InDelta(t, proj[5]/2, proj[0], 1e-5)
}

func TestCloseDisposesScene(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "gem.glb")
	v, r := newViewer(t, dir)
	require.NoError(t, v.SetPart(context.Background(), assembly.Head, "gem.glb", [3]float32{0.4, 0.4, 0.4}))
	settle(t, v)

	v.Close()
	assert.Len(t, r.disposed, 1)
	assert.Equal(t, 0, v.Scene().Len())
}
