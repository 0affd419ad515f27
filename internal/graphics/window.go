package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ring-configurator/internal/config"
)

var background = rl.NewColor(24, 24, 28, 255)

// ErrNoWindow is returned when raylib could not create the window or its GL context.
var ErrNoWindow = errors.New("graphics: window not created")

// Window is the raylib window. It is the drawable surface the viewer renders into.
type Window struct {
	title string
}

// OpenWindow creates the window and GL context. Every other raylib call must come after it,
// on the same goroutine. ESC is left to the console; the window closes via its close button.
func OpenWindow(cfg config.Window) (*Window, error) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, ErrNoWindow
	}
	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return &Window{title: cfg.Title}, nil
}

// Size returns the current drawable size in screen pixels.
func (w *Window) Size() (width, height int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Close destroys the window and its GL context.
func (w *Window) Close() {
	rl.CloseWindow()
}

// Run drives the main loop until the window is closed. Each frame it reports a resize to
// onResize, calls update (input), then clears the screen and calls draw.
func Run(w *Window, onResize func(width, height int), update, draw func()) {
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() && onResize != nil {
			onResize(w.Size())
		}
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
