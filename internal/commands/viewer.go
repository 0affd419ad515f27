package commands

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"ring-configurator/internal/assembly"
	"ring-configurator/internal/config"
)

// Target is what the viewer commands act on.
type Target interface {
	SetPart(slot assembly.Slot, path string, scale [3]float32) error
	ToggleRotation() bool
	SetShowFPS(show bool)
	SetShowGrid(show bool)
	Catalog() config.Config
}

// ParseScale parses "s" (uniform) or "x,y,z". Zero and negative components are passed
// through; mirroring or flattening a part is the caller's call.
func ParseScale(s string) ([3]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return [3]float32{}, fmt.Errorf("scale %q: want s or x,y,z", s)
	}
	var out [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return [3]float32{}, fmt.Errorf("scale %q: %w", s, err)
		}
		out[i] = float32(f)
	}
	if len(parts) == 1 {
		out[1], out[2] = out[0], out[0]
	}
	return out, nil
}

// RegisterViewer adds the viewer's console commands to r. out receives command output.
//
//	cmd load --slot head --path models/x.glb [--scale 0.4,0.4,0.4]
//	cmd part --id head-gem
//	cmd parts
//	cmd rotate
//	cmd fps --show | --hide
//	cmd grid --show | --hide
//	cmd help
func RegisterViewer(r *Registry, t Target, out func(string)) {
	load := flag.NewFlagSet("load", flag.ContinueOnError)
	slotName := load.String("slot", "", "shank or head")
	path := load.String("path", "", "model path, relative to the asset base, or a URL")
	scaleStr := load.String("scale", "", "s or x,y,z; defaults to the slot's scale")
	r.Register("load", "--slot shank|head --path <file> [--scale x,y,z]", load, func() error {
		slot, err := assembly.ParseSlot(*slotName)
		if err != nil {
			return err
		}
		if *path == "" {
			return errors.New("load: --path is required")
		}
		scale := slotScale(t.Catalog(), slot)
		if *scaleStr != "" {
			if scale, err = ParseScale(*scaleStr); err != nil {
				return err
			}
		}
		out(fmt.Sprintf("loading %s into %s", *path, slot))
		return t.SetPart(slot, *path, scale)
	})

	part := flag.NewFlagSet("part", flag.ContinueOnError)
	id := part.String("id", "", "catalog part id")
	r.Register("part", "--id <catalog id>", part, func() error {
		cfg := t.Catalog()
		p, err := cfg.Part(*id)
		if err != nil {
			return err
		}
		slot, err := assembly.ParseSlot(p.Slot)
		if err != nil {
			return err
		}
		out(fmt.Sprintf("loading %s into %s", p.Path, slot))
		return t.SetPart(slot, p.Path, cfg.ScaleFor(p))
	})

	r.Register("parts", "list the catalog", flag.NewFlagSet("parts", flag.ContinueOnError), func() error {
		cfg := t.Catalog()
		for _, p := range cfg.Parts {
			s := cfg.ScaleFor(p)
			out(fmt.Sprintf("%-14s %-6s %s scale=%g,%g,%g", p.ID, p.Slot, p.Path, s[0], s[1], s[2]))
		}
		return nil
	})

	r.Register("rotate", "toggle auto-rotation", flag.NewFlagSet("rotate", flag.ContinueOnError), func() error {
		if t.ToggleRotation() {
			out("rotation on")
		} else {
			out("rotation off")
		}
		return nil
	})

	registerToggle(r, "fps", "the FPS counter", t.SetShowFPS)
	registerToggle(r, "grid", "the reference grid", t.SetShowGrid)

	r.Register("help", "list commands", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		for _, line := range r.Help() {
			out(line)
		}
		return nil
	})
}

// registerToggle adds "cmd <name> --show | --hide" calling set.
func registerToggle(r *Registry, name, what string, set func(bool)) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	show := fs.Bool("show", false, "show "+what)
	hide := fs.Bool("hide", false, "hide "+what)
	r.Register(name, "--show | --hide", fs, func() error {
		if *show == *hide {
			return fmt.Errorf("%s: pass exactly one of --show or --hide", name)
		}
		set(*show)
		return nil
	})
}

func slotScale(cfg config.Config, slot assembly.Slot) [3]float32 {
	if slot == assembly.Head {
		return cfg.Assembly.HeadScale
	}
	return cfg.Assembly.ShankScale
}
