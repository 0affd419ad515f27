package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/viewer.yaml"

// Slot names used by catalog entries.
const (
	SlotShank = "shank"
	SlotHead  = "head"
)

// ErrUnknownPart is returned by Catalog lookups for an id that is not listed.
var ErrUnknownPart = errors.New("config: unknown part")

// Window holds the initial window geometry.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	TargetFPS int    `yaml:"target_fps"`
}

// Camera holds the perspective camera parameters. Fovy is in degrees.
type Camera struct {
	Fovy     float32    `yaml:"fovy"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

// Controls tunes the orbit controls.
type Controls struct {
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
}

// Assembly holds the part placement constants.
type Assembly struct {
	HeadOffset   float32    `yaml:"head_offset"`
	RotationStep float32    `yaml:"rotation_step"`
	ShankScale   [3]float32 `yaml:"shank_scale"`
	HeadScale    [3]float32 `yaml:"head_scale"`
}

// Part is one catalog entry: a selectable model for a slot. Scale is optional; entries
// without one use the slot default from Assembly.
type Part struct {
	ID    string      `yaml:"id"`
	Label string      `yaml:"label"`
	Slot  string      `yaml:"slot"`
	Path  string      `yaml:"path"`
	Scale *[3]float32 `yaml:"scale,omitempty"`
}

// Config holds viewer preferences and the part catalog.
type Config struct {
	Window       Window   `yaml:"window"`
	Camera       Camera   `yaml:"camera"`
	Controls     Controls `yaml:"controls"`
	Assembly     Assembly `yaml:"assembly"`
	AssetBase    string   `yaml:"asset_base"`
	Stylesheet   string   `yaml:"stylesheet"`
	Font         string   `yaml:"font"`
	ShowFPS      bool     `yaml:"show_fps"`
	ShowMemAlloc bool     `yaml:"show_memalloc"`
	LogLevel     string   `yaml:"log_level"`
	Parts        []Part   `yaml:"parts"`
}

// Default returns the stock configuration: two shanks, two heads and the original camera,
// offset and rotation constants.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "Ring Configurator",
			Width:     1280,
			Height:    720,
			Resizable: true,
			TargetFPS: 60,
		},
		Camera: Camera{
			Fovy:     75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 5},
		},
		Controls: Controls{
			Damping:       false,
			DampingFactor: 0.05,
		},
		Assembly: Assembly{
			HeadOffset:   1.5,
			RotationStep: 0.01,
			ShankScale:   [3]float32{1, 1, 1},
			HeadScale:    [3]float32{0.4, 0.4, 0.4},
		},
		AssetBase:  "assets",
		Stylesheet: "assets/ui/viewer.css",
		LogLevel:   "info",
		Parts: []Part{
			{ID: "shank-band", Label: "Shank 1", Slot: SlotShank, Path: "models/eye/newband6.glb", Scale: &[3]float32{1, 1, 1}},
			{ID: "shank-design", Label: "Shank 2", Slot: SlotShank, Path: "models/eye/shankdesign.glb", Scale: &[3]float32{0.7, 0.7, 0.7}},
			{ID: "head-gem2", Label: "Head 1", Slot: SlotHead, Path: "models/eye/gem2.glb", Scale: &[3]float32{0.4, 0.4, 0.4}},
			{ID: "head-gem", Label: "Head 2", Slot: SlotHead, Path: "models/eye/gem.glb", Scale: &[3]float32{0.4, 0.4, 0.4}},
		},
	}
}

// Load reads the config at path on top of Default(). A missing file yields Default() and
// no error; invalid YAML or an invalid catalog is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, overwriting only the keys present, then validates it.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return cfg.Validate()
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks window geometry and the catalog: known slots, non-empty paths, unique ids.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	seen := make(map[string]bool, len(c.Parts))
	for i, p := range c.Parts {
		if p.ID == "" {
			return fmt.Errorf("config: parts[%d]: missing id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("config: parts[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Slot != SlotShank && p.Slot != SlotHead {
			return fmt.Errorf("config: part %q: unknown slot %q", p.ID, p.Slot)
		}
		if p.Path == "" {
			return fmt.Errorf("config: part %q: missing path", p.ID)
		}
	}
	return nil
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (c *Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, c, copier.Option{DeepCopy: true}); err != nil {
		return *c
	}
	return out
}

// Part returns the catalog entry with the given id.
func (c *Config) Part(id string) (Part, error) {
	for _, p := range c.Parts {
		if p.ID == id {
			return p, nil
		}
	}
	return Part{}, fmt.Errorf("%w: %q", ErrUnknownPart, id)
}

// ScaleFor returns the part's scale, or the slot default when the entry has none.
func (c *Config) ScaleFor(p Part) [3]float32 {
	if p.Scale != nil {
		return *p.Scale
	}
	if p.Slot == SlotHead {
		return c.Assembly.HeadScale
	}
	return c.Assembly.ShankScale
}

// Env variables read by ApplyEnv.
const (
	EnvAssetBase = "RINGVIEWER_ASSET_BASE"
	EnvShowFPS   = "RINGVIEWER_SHOW_FPS"
	EnvLogLevel  = "RINGVIEWER_LOG_LEVEL"
)

// ApplyEnv overrides fields from environment variables looked up with lookup
// (os.LookupEnv in production). Unparseable booleans are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAssetBase); ok && v != "" {
		c.AssetBase = v
	}
	if v, ok := lookup(EnvShowFPS); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.ShowFPS = b
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
}
