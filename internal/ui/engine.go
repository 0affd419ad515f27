package ui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

// Engine holds the current stylesheet and nodes, lays them out and draws them with raylib.
// Draw order is node order; hit testing runs in reverse so the topmost node wins.
// Resolved styles are cached and only recomputed when the sheet, the node list or a node's
// classes change.
type Engine struct {
	sheet   *Stylesheet
	nodes   []*Node
	styles  []ComputedStyle
	classes []string
	valid   bool
	font    rl.Font
	hover   *Node
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. an embedded fallback).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.valid = false
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

// LoadFont loads a TTF font from path for text rendering; on failure the default font stays.
// Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: load font %s: %w", path, os.ErrNotExist)
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.valid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.hover = nil
	e.valid = false
}

// Nodes returns the current nodes.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

func (e *Engine) resolveStyles() {
	if e.valid && len(e.classes) == len(e.nodes) {
		for i, n := range e.nodes {
			if e.classes[i] != n.Class {
				e.valid = false
				break
			}
		}
	}
	if e.valid && len(e.classes) == len(e.nodes) {
		return
	}
	e.styles = make([]ComputedStyle, len(e.nodes))
	e.classes = make([]string, len(e.nodes))
	for i, n := range e.nodes {
		e.styles[i] = ResolveProps(e.sheet.Resolve(n))
		e.classes[i] = n.Class
	}
	e.valid = true
}

// Layout resolves styles and places every node for a screen of the given size. Percent
// offsets place the node's box within the free space, so 100% keeps it on screen.
func (e *Engine) Layout(screenW, screenH int32) {
	e.resolveStyles()
	for i, n := range e.nodes {
		st := e.styles[i]
		w, h := st.Width, st.Height
		x, y := st.Left, st.Top
		if st.LeftPct >= 0 {
			x = (screenW - w) * st.LeftPct / 100
		}
		if st.TopPct >= 0 {
			y = (screenH - h) * st.TopPct / 100
		}
		y += int32(n.Stack) * (h + st.Gap)
		n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	}
}

// Hit returns the topmost visible interactive node containing p, or nil.
func (e *Engine) Hit(p rl.Vector2) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Interactive() && rl.CheckCollisionPointRec(p, n.Bounds) {
			return n
		}
	}
	return nil
}

// Click runs the OnClick of the node under p and reports whether one was hit.
func (e *Engine) Click(p rl.Vector2) bool {
	n := e.Hit(p)
	if n == nil {
		return false
	}
	n.OnClick()
	return true
}

// Update lays out for the current screen, tracks the hovered button and dispatches a left
// click. Call once per frame before camera input so Captured is current.
func (e *Engine) Update() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	p := rl.GetMousePosition()
	e.hover = e.Hit(p)
	if e.hover != nil && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		e.hover.OnClick()
	}
}

// Captured reports whether the pointer is over a button, so the click belongs to the UI.
func (e *Engine) Captured() bool {
	return e.hover != nil
}

// Draw draws all visible nodes: background, border, then text.
func (e *Engine) Draw() {
	e.resolveStyles()
	for i, n := range e.nodes {
		if n.Hidden {
			continue
		}
		st := e.styles[i]
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		bg := st.Background
		if n == e.hover && st.HasHover {
			bg = st.Hover
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, st.Border)
		}
		if n.Text == "" {
			continue
		}
		tx, ty := x+st.Padding, y+st.Padding
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(tx), float32(ty)), float32(st.FontSize), 1, st.Color)
		} else {
			rl.DrawText(n.Text, tx, ty, st.FontSize, st.Color)
		}
	}
}
