package main

import (
	"log"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/batch"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/config"
	"github.com/Carmen-Shannon/wavegrid/engine/scene"
)

// loadConfig returns the defaults when path is empty, otherwise the validated file.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newCamera builds the orbit camera from config. The far plane is pushed out when the grid
// would otherwise be clipped from the configured eye.
func newCamera(cfg *config.Config, width, height int, gridMin, gridMax common.Vec3) camera.Camera {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return camera.NewCamera(
		camera.WithUp(cfg.Camera.Up),
		camera.WithFov(common.Radians(cfg.Camera.FOV)),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(cfg.Camera.Near, farPlane(cfg, gridMin, gridMax)),
		camera.WithController(camera.NewOrbitController(
			camera.WithTarget(cfg.Camera.Target),
			camera.WithEye(cfg.Camera.Eye),
		)),
	)
}

func farPlane(cfg *config.Config, gridMin, gridMax common.Vec3) float32 {
	reach := cfg.Camera.Eye.Sub(cfg.Camera.Target).Length() + gridMax.Sub(gridMin).Length()
	return max(cfg.Camera.Far, reach)
}

func gridOptions(cfg *config.Config) []batch.GridBuilderOption {
	opts := []batch.GridBuilderOption{
		batch.WithRows(cfg.Grid.Rows),
		batch.WithColumns(cfg.Grid.Columns),
		batch.WithSpacing(cfg.Grid.Spacing),
		batch.WithSize(cfg.Grid.Size),
		batch.WithPhaseStep(cfg.Grid.PhaseStep),
		batch.WithLayout(cfg.Layout()),
		batch.WithTint(cfg.Colors.Tint),
		batch.WithFaceColors(cfg.FaceColors()),
	}
	if cfg.Grid.Workers > 0 {
		opts = append(opts, batch.WithWorkers(cfg.Grid.Workers))
	}
	return opts
}

func newGrid(cfg *config.Config) batch.Grid {
	return batch.NewGrid(gridOptions(cfg)...)
}

func sceneOptions(cfg *config.Config, grid batch.Grid) []scene.SceneBuilderOption {
	return []scene.SceneBuilderOption{
		scene.WithActive(true),
		scene.WithGrid(grid),
		scene.WithWave(cfg.Wave.Amplitude, cfg.Wave.Frequency),
		scene.WithPipelineKey("wave_" + cfg.Layout().String()),
		scene.WithShaderPaths(cfg.Shader.Vertex, cfg.Shader.Fragment),
	}
}

type waveSetter interface {
	SetWave(amplitude, frequency float32)
}

type clearColorSetter interface {
	SetClearColor(color common.Color)
}

// applyReload pushes the hot-reloadable parts of a changed config. Grid and camera settings
// need a restart.
func applyReload(cfg *config.Config, wave waveSetter, clear clearColorSetter) {
	wave.SetWave(cfg.Wave.Amplitude, cfg.Wave.Frequency)
	clear.SetClearColor(cfg.Colors.Clear)
	log.Printf("[Wavegrid] reloaded wave: amplitude=%.2f frequency=%.2f", cfg.Wave.Amplitude, cfg.Wave.Frequency)
}
