package main

import (
	"context"

	"ring-configurator/internal/assembly"
	"ring-configurator/internal/commands"
	"ring-configurator/internal/config"
	"ring-configurator/internal/debug"
	"ring-configurator/internal/logger"
	"ring-configurator/internal/scenegraph"
	"ring-configurator/internal/ui"
	"ring-configurator/internal/viewer"
)

// app ties the viewer to its on-screen controls. Everything here runs on the window
// goroutine.
type app struct {
	ctx    context.Context
	cfg    config.Config
	log    *logger.Logger
	viewer *viewer.Viewer
	ui     *ui.Engine
	status *ui.Status
	dbg    *debug.Debug
	grid   func(bool)

	controls  *ui.Controls
	requested [2]string // catalog id last requested per slot; "" for console paths
	shown     [2]*scenegraph.Node
	shownID   [2]string // catalog id of shown, which trails requested while a load is in flight
}

var _ commands.Target = (*app)(nil)

func newApp(ctx context.Context, cfg config.Config, log *logger.Logger, v *viewer.Viewer, engine *ui.Engine, dbg *debug.Debug, grid func(bool)) *app {
	a := &app{ctx: ctx, cfg: cfg, log: log, viewer: v, ui: engine, status: ui.NewStatus(), dbg: dbg, grid: grid}
	a.buildControls()
	return a
}

// buildControls (re)creates the buttons from the current catalog.
func (a *app) buildControls() {
	a.controls = ui.BuildControls(a.cfg.Parts, a.selectPart, func() { a.ToggleRotation() })
	a.controls.SetRotating(a.viewer.Rotating())
	parts := a.viewer.Assembly()
	for s := assembly.Shank; s <= assembly.Head; s++ {
		if id := a.shownID[s]; id != "" && parts.Part(s) != nil {
			a.controls.MarkActive(s.String(), id)
		}
		if id := a.requested[s]; id != "" && id != a.shownID[s] && parts.InFlight() > 0 {
			a.controls.MarkPending(s.String(), id)
		}
	}
	a.ui.SetNodes(append(a.controls.Nodes(), a.status.Nodes()...))
}

func (a *app) selectPart(p config.Part) {
	slot, err := assembly.ParseSlot(p.Slot)
	if err != nil {
		a.log.Error("bad catalog entry", "part", p.ID, "err", err)
		return
	}
	if err := a.request(slot, p.ID, p.Path, a.cfg.ScaleFor(p)); err != nil {
		a.log.Error("part request failed", "part", p.ID, "err", err)
	}
}

func (a *app) request(slot assembly.Slot, id, path string, scale [3]float32) error {
	if err := a.viewer.SetPart(a.ctx, slot, path, scale); err != nil {
		return err
	}
	a.requested[slot] = id
	a.controls.MarkPending(slot.String(), id)
	return nil
}

// SetPart loads an arbitrary path from the console.
func (a *app) SetPart(slot assembly.Slot, path string, scale [3]float32) error {
	return a.request(slot, "", path, scale)
}

func (a *app) ToggleRotation() bool {
	on := a.viewer.ToggleRotation()
	a.controls.SetRotating(on)
	return on
}

func (a *app) SetShowFPS(show bool) {
	a.dbg.SetShowFPS(show)
}

func (a *app) SetShowGrid(show bool) {
	if a.grid != nil {
		a.grid(show)
	}
}

func (a *app) Catalog() config.Config {
	return a.cfg.Clone()
}

// applyConfig takes a reloaded config: the catalog, slot scales and stylesheet change live;
// window, camera and asset base keep their startup values.
func (a *app) applyConfig(cfg config.Config) {
	a.cfg.Parts = cfg.Parts
	a.cfg.Assembly.ShankScale = cfg.Assembly.ShankScale
	a.cfg.Assembly.HeadScale = cfg.Assembly.HeadScale
	a.cfg.Stylesheet = cfg.Stylesheet
	loadStylesheet(a.ui, a.cfg.Stylesheet, a.log)
	a.buildControls()
	a.log.Info("catalog reloaded", "parts", len(cfg.Parts))
}

// sync reflects finished loads on the buttons and the status panel. Call after Frame.
func (a *app) sync() {
	parts := a.viewer.Assembly()
	var names [2]string
	for s := assembly.Shank; s <= assembly.Head; s++ {
		node := parts.Part(s)
		if node != nil {
			names[s] = node.Name
		}
		if node != a.shown[s] {
			a.shown[s] = node
			a.shownID[s] = ""
			if node != nil {
				a.shownID[s] = a.requested[s]
			}
			a.controls.MarkActive(s.String(), a.shownID[s])
		}
	}
	if parts.InFlight() == 0 {
		a.controls.ClearPending(config.SlotShank)
		a.controls.ClearPending(config.SlotHead)
	}
	a.status.Update(ui.StatusInfo{
		Shank:    names[assembly.Shank],
		Head:     names[assembly.Head],
		Loading:  parts.InFlight(),
		Rotating: a.viewer.Rotating(),
	})
}
