package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ring-configurator/internal/config"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws runtime overlays in the top-right corner: FPS, heap size and, when Stats is
// set, one line of scene statistics.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Stats, if set, is sampled with the other overlays and drawn below them.
	Stats func() string

	font       rl.Font
	frameCount uint32
	lines      []string
	mem        runtime.MemStats
}

// New returns overlays switched on as cfg asks.
func New(cfg config.Config) *Debug {
	return &Debug{ShowFPS: cfg.ShowFPS, ShowMemAlloc: cfg.ShowMemAlloc}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.frameCount = 0
}

// SetFont sets the overlay font. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

func formatFPS(fps int32) string {
	return fmt.Sprintf("FPS: %d", fps)
}

func formatMem(bytes uint64) string {
	return fmt.Sprintf("Mem: %.2f MiB", float64(bytes)/(1024*1024))
}

// sample rebuilds the overlay text.
func (d *Debug) sample(fps int32) {
	d.lines = d.lines[:0]
	if d.ShowFPS {
		d.lines = append(d.lines, formatFPS(fps))
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.mem)
		d.lines = append(d.lines, formatMem(d.mem.Alloc))
	}
	if d.Stats != nil && (d.ShowFPS || d.ShowMemAlloc) {
		d.lines = append(d.lines, d.Stats())
	}
}

// Draw renders the enabled overlays. Text is recomputed every updateInterval frames and
// right after a toggle.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc {
		return
	}
	if d.frameCount%updateInterval == 0 {
		d.sample(rl.GetFPS())
	}
	d.frameCount++

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
