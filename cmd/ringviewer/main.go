package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/sync/errgroup"

	"ring-configurator/internal/commands"
	"ring-configurator/internal/config"
	"ring-configurator/internal/debug"
	"ring-configurator/internal/download"
	"ring-configurator/internal/env"
	"ring-configurator/internal/fonts"
	"ring-configurator/internal/graphics"
	"ring-configurator/internal/loader"
	"ring-configurator/internal/logger"
	"ring-configurator/internal/terminal"
	"ring-configurator/internal/ui"
	"ring-configurator/internal/viewer"
)

type reload struct {
	cfg config.Config
	err error
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.ConfigPath, "viewer config (YAML)")
	envPath := flag.String("env", ".env", "environment file loaded before the config")
	writeConfig := flag.Bool("write-config", false, "write the default config to -config and exit")
	preload := flag.String("parts", "", "comma-separated catalog ids to load at startup")
	watch := flag.Bool("watch", true, "reload the catalog when the config file changes")
	flag.Parse()

	if err := env.Load(*envPath); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	if *writeConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("wrote", *configPath)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg.ApplyEnv(os.LookupEnv)

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	log := logger.New(logger.Options{Level: level})
	slog.SetDefault(log.Logger)

	win, err := graphics.OpenWindow(cfg.Window)
	if err != nil {
		log.Error("cannot start viewer", "err", err)
		return 1
	}
	defer win.Close()

	renderer := graphics.NewRenderer(log.Logger)
	defer renderer.Close()

	ld := loader.New(cfg.AssetBase, download.New())
	v, err := viewer.New(win, renderer, viewer.OptionsFromConfig(cfg, ld, log.Logger))
	if err != nil {
		log.Error("cannot start viewer", "err", err)
		return 1
	}
	defer v.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	reloads := make(chan reload, 1)
	if *watch {
		startWatch(gctx, g, *configPath, reloads, log)
	}

	engine := ui.New()
	loadStylesheet(engine, cfg.Stylesheet, log)
	dbg := debug.New(cfg)
	dbg.Stats = func() string { return fmt.Sprintf("Meshes: %d", renderer.Uploaded()) }
	a := newApp(ctx, cfg, log, v, engine, dbg, func(show bool) { renderer.ShowGrid = show })

	reg := commands.NewRegistry()
	commands.RegisterViewer(reg, a, log.Log)
	term := terminal.New(log, reg)

	if path, err := fonts.Find(fonts.Dir, cfg.Font); err == nil {
		if err := engine.LoadFont(path); err != nil {
			log.Warn("font not loaded", "path", path, "err", err)
		} else {
			term.SetFont(engine.Font())
			dbg.SetFont(engine.Font())
		}
	}

	for _, id := range strings.Split(*preload, ",") {
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		p, err := cfg.Part(id)
		if err != nil {
			log.Warn("preload skipped", "err", err)
			continue
		}
		a.selectPart(p)
	}

	input := graphics.NewInput(v.Controls(), func() bool {
		_, h := win.Size()
		return engine.Captured() || term.Captured(rl.GetMousePosition().Y, h)
	})

	log.Info("viewer started", "config", *configPath, "assets", cfg.AssetBase, "parts", len(cfg.Parts))

	update := func() {
		select {
		case r := <-reloads:
			if r.err != nil {
				log.Error("config reload failed", "err", r.err)
			} else {
				a.applyConfig(r.cfg)
			}
		default:
		}
		term.Update()
		engine.Update()
		_, h := win.Size()
		input.Update(h)
	}
	draw := func() {
		v.Frame()
		a.sync()
		engine.Draw()
		term.Draw()
		dbg.Draw()
	}
	graphics.Run(win, v.Resize, update, draw)

	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("config watcher stopped", "err", err)
	}
	return 0
}

// startWatch runs config.Watch in g, posting results to reloads for the window goroutine.
// A config directory that does not exist is not watched.
func startWatch(ctx context.Context, g *errgroup.Group, path string, reloads chan<- reload, log *logger.Logger) {
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		log.Debug("config directory missing, not watching", "path", path)
		return
	}
	g.Go(func() error {
		return config.Watch(ctx, path, func(cfg config.Config, err error) {
			select {
			case reloads <- reload{cfg: cfg, err: err}:
			case <-ctx.Done():
			}
		})
	})
}

// loadStylesheet loads path into engine, falling back to the built-in theme.
func loadStylesheet(engine *ui.Engine, path string, log *logger.Logger) {
	err := engine.LoadCSS(path)
	if err == nil {
		return
	}
	if !errors.Is(err, os.ErrNotExist) {
		log.Warn("stylesheet not loaded, using built-in theme", "path", path, "err", err)
	}
	sheet, _ := ui.ParseCSS(ui.DefaultCSS)
	engine.SetStylesheet(sheet)
}
