package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Parts, 4)
	assert.Equal(t, float32(1.5), cfg.Assembly.HeadOffset)
	assert.Equal(t, float32(0.01), cfg.Assembly.RotationStep)
	assert.Equal(t, float32(75), cfg.Camera.Fovy)
}

func TestLoadMissingFileGivesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := `
asset_base: https://cdn.example.com/rings
assembly:
  head_offset: 2
parts:
  - id: plain
    label: Plain band
    slot: shank
    path: models/plain.glb
  - id: solitaire
    label: Solitaire
    slot: head
    path: models/solitaire.glb
    scale: [0.5, 0.5, 0.5]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/rings", cfg.AssetBase)
	assert.Equal(t, float32(2), cfg.Assembly.HeadOffset)
	assert.Equal(t, float32(0.01), cfg.Assembly.RotationStep)
	assert.Equal(t, 1280, cfg.Window.Width)
	require.Len(t, cfg.Parts, 2)

	plain, err := cfg.Part("plain")
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 1, 1}, cfg.ScaleFor(plain))

	sol, err := cfg.Part("solitaire")
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, cfg.ScaleFor(sol))

	_, err = cfg.Part("missing")
	assert.ErrorIs(t, err, ErrUnknownPart)
}

func TestScaleForHeadDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, [3]float32{0.4, 0.4, 0.4}, cfg.ScaleFor(Part{Slot: SlotHead}))
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "parts: [",
		"unknown slot": "parts: [{id: a, slot: band, path: a.glb}]",
		"missing path": "parts: [{id: a, slot: head}]",
		"missing id":   "parts: [{slot: head, path: a.glb}]",
		"duplicate id": "parts: [{id: a, slot: head, path: a.glb}, {id: a, slot: shank, path: b.glb}]",
		"window":       "window: {width: 0}",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Parse([]byte(data), &cfg))
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.yaml")
	require.NoError(t, Save(path, Default()))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestClone(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	assert.Equal(t, cfg, c)
	c.Parts = append(c.Parts, Part{ID: "extra"})
	assert.Len(t, cfg.Parts, 4)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAssetBase: "/srv/rings",
		EnvShowFPS:   "true",
		EnvLogLevel:  " DEBUG ",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "/srv/rings", cfg.AssetBase)
	assert.True(t, cfg.ShowFPS)
	assert.Equal(t, "debug", cfg.LogLevel)

	env[EnvShowFPS] = "maybe"
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.True(t, cfg.ShowFPS)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	require.NoError(t, Save(path, Default()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg Config, err error) {
			if err == nil {
				got <- cfg
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("show_fps: true\n"), 0o644))

	select {
	case cfg := <-got:
		assert.True(t, cfg.ShowFPS)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestShippedConfigMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", ConfigPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
