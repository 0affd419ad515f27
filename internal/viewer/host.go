package viewer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"ring-configurator/internal/assembly"
	"ring-configurator/internal/config"
	"ring-configurator/internal/orbit"
	"ring-configurator/internal/scenegraph"
)

var (
	// ErrNoSurface is returned by New when there is nothing to draw into.
	ErrNoSurface  = errors.New("viewer: no surface")
	ErrNoRenderer = errors.New("viewer: no renderer")
	ErrNoLoader   = errors.New("viewer: no loader")
)

// Surface is the display area the viewer draws into; its size drives the camera aspect
// and the renderer's drawing buffer.
type Surface interface {
	Size() (width, height int)
}

// Renderer draws a scene. Dispose frees whatever it allocated for a node subtree.
type Renderer interface {
	SetSize(width, height int)
	Render(scene *scenegraph.Node, cam Camera, lights []Light)
	Dispose(n *scenegraph.Node)
}

// Options configures New.
type Options struct {
	Camera       config.Camera
	Controls     config.Controls
	HeadOffset   float32
	RotationStep float32
	Loader       assembly.Loader
	Logger       *slog.Logger
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg config.Config, loader assembly.Loader, log *slog.Logger) Options {
	return Options{
		Camera:       cfg.Camera,
		Controls:     cfg.Controls,
		HeadOffset:   cfg.Assembly.HeadOffset,
		RotationStep: cfg.Assembly.RotationStep,
		Loader:       loader,
		Logger:       log,
	}
}

// DefaultRotationStep is the yaw added per frame while auto-rotation is on, in radians.
const DefaultRotationStep = 0.01

// Viewer owns everything one viewport shows: scene, camera, lights, orbit controls and the
// part assembly. Its methods must be called from the render goroutine.
type Viewer struct {
	surface  Surface
	renderer Renderer
	log      *slog.Logger

	scene    *scenegraph.Node
	camera   Camera
	lights   []Light
	controls *orbit.Controls
	parts    *assembly.Manager

	width, height int
	rotating      bool
	rotationStep  float32
}

// New sets up camera, renderer size, lighting rig and controls for surface.
func New(surface Surface, r Renderer, opts Options) (*Viewer, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if r == nil {
		return nil, ErrNoRenderer
	}
	if opts.Loader == nil {
		return nil, ErrNoLoader
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	def := config.Default()
	cam := opts.Camera
	if cam.Fovy == 0 {
		cam = def.Camera
	}
	ctl := opts.Controls
	if ctl.DampingFactor == 0 {
		ctl.DampingFactor = def.Controls.DampingFactor
	}
	step := opts.RotationStep
	if step == 0 {
		step = DefaultRotationStep
	}

	v := &Viewer{
		surface:  surface,
		renderer: r,
		log:      opts.Logger,
		scene:    scenegraph.NewNode("scene"),
		lights:   DefaultLights(),
		camera: Camera{
			Position: mgl32.Vec3(cam.Position),
			Up:       mgl32.Vec3{0, 1, 0},
			Fovy:     cam.Fovy,
			Near:     cam.Near,
			Far:      cam.Far,
			Aspect:   1,
		},
		rotationStep: step,
	}

	v.controls = orbit.New(v.camera.Position, v.camera.Target)
	v.controls.EnableDamping = ctl.Damping
	v.controls.DampingFactor = ctl.DampingFactor
	v.controls.MinDistance = ctl.MinDistance
	if ctl.MaxDistance > 0 {
		v.controls.MaxDistance = ctl.MaxDistance
	}

	v.parts = assembly.New(v.scene, opts.Loader, r, assembly.Options{
		HeadOffset: opts.HeadOffset,
		Logger:     opts.Logger,
		OnTarget:   v.controls.SetTarget,
	})

	w, h := surface.Size()
	v.Resize(w, h)
	return v, nil
}

// Resize updates the camera aspect and the renderer's drawing buffer to width x height.
// A zero height (minimised window) is ignored.
func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.camera.Aspect = float32(width) / float32(height)
	v.renderer.SetSize(width, height)
}

// SetPart requests a model for slot; see assembly.Manager.SetPart.
func (v *Viewer) SetPart(ctx context.Context, slot assembly.Slot, path string, scale [3]float32) error {
	_, err := v.parts.SetPart(ctx, slot, path, scale)
	return err
}

// ToggleRotation flips auto-rotation and returns the new state.
func (v *Viewer) ToggleRotation() bool {
	v.rotating = !v.rotating
	return v.rotating
}

// Rotating reports whether auto-rotation is on.
func (v *Viewer) Rotating() bool { return v.rotating }

// Camera returns a copy of the current camera.
func (v *Viewer) Camera() Camera { return v.camera }

// Controls returns the orbit controls for input handlers.
func (v *Viewer) Controls() *orbit.Controls { return v.controls }

// Scene returns the scene root.
func (v *Viewer) Scene() *scenegraph.Node { return v.scene }

// Assembly returns the part manager.
func (v *Viewer) Assembly() *assembly.Manager { return v.parts }

// Lights returns the lighting rig.
func (v *Viewer) Lights() []Light { return v.lights }

// Size returns the last applied viewport size.
func (v *Viewer) Size() (width, height int) { return v.width, v.height }

// Close cancels pending loads and disposes every node still in the scene.
func (v *Viewer) Close() {
	v.parts.Close()
	for _, c := range v.scene.Children() {
		v.renderer.Dispose(c)
		v.scene.Remove(c)
	}
}
