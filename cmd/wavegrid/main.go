// Command wavegrid renders a grid of colored cubes rising and falling in a sine wave.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Carmen-Shannon/wavegrid/engine"
	"github.com/Carmen-Shannon/wavegrid/engine/config"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer"
	"github.com/Carmen-Shannon/wavegrid/engine/scene"
	"github.com/Carmen-Shannon/wavegrid/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	watch := flag.Bool("watch", false, "reload wave parameters and clear color when the config file changes")
	profile := flag.Bool("profile", false, "log FPS and memory statistics every second")
	software := flag.Bool("software", false, "force a software (CPU) adapter")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Wavegrid] %v", err)
	}
	presentMode, err := renderer.ParsePresentMode(cfg.Window.PresentMode)
	if err != nil {
		log.Fatalf("[Wavegrid] %v", err)
	}

	// ── Window + Renderer ───────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(cfg.Window.MSAA),
		renderer.WithClearColor(cfg.Colors.Clear),
		renderer.WithForceSoftwareRenderer(*software),
	)

	// ── Camera + Grid + Scene ───────────────────────────────────────
	grid := newGrid(cfg)
	gridMin, gridMax := grid.Bounds()
	cam := newCamera(cfg, win.Width(), win.Height(), gridMin, gridMax)
	sc := scene.NewScene("wavegrid", cam, r, sceneOptions(cfg, grid)...)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, sc),
		engine.WithProfiling(*profile),
		engine.WithRenderFrameLimit(float64(cfg.Window.FrameLimit)),
	)
	bindInput(win, eng, cam.Controller())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *watch {
		if *configPath == "" {
			log.Printf("[Wavegrid] -watch ignored without -config")
		} else if err := config.Watch(ctx, *configPath, func(c *config.Config) {
			applyReload(c, sc, r)
		}); err != nil {
			log.Printf("[Wavegrid] config watch disabled: %v", err)
		}
	}

	log.Printf("[Wavegrid] %dx%d grid, %s layout. Arrows orbit, WASD pans, scroll zooms, middle-drag orbits, Esc quits",
		cfg.Grid.Rows, cfg.Grid.Columns, cfg.Layout())
	runErr := eng.Run()

	cancel()
	sc.Release()
	r.Release()
	if err := win.Close(); err != nil {
		log.Printf("[Wavegrid] close window: %v", err)
	}
	if runErr != nil {
		log.Fatalf("[Wavegrid] %v", runErr)
	}
}
