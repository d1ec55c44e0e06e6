package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/config"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[grid]\nrows = 4\ncolumns = 5\nlayout = \"minimal\"\n"), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Grid.Rows)
	assert.Equal(t, solid.LayoutMinimal, cfg.Layout())
}

func TestNewGridFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Rows = 3
	cfg.Grid.Columns = 2
	cfg.Grid.Workers = 2
	cfg.Grid.Layout = solid.LayoutNoTint.String()

	g := newGrid(cfg)
	defer g.Close()
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 2, g.Columns())
	assert.Equal(t, solid.LayoutNoTint, g.Layout())
	assert.Equal(t, cfg.Grid.Spacing, g.Spacing())
	assert.Len(t, g.Pack(), 6*36*32)
}

func TestNewCameraFromConfig(t *testing.T) {
	cfg := config.Default()
	cam := newCamera(cfg, 1600, 800, common.Vec3{}, common.Vec3{})
	assert.Equal(t, float32(2), cam.Aspect())
	assert.InDelta(t, common.Radians(45), cam.Fov(), 1e-6)

	eye := cam.Controller().Position()
	for i := range 3 {
		assert.InDelta(t, cfg.Camera.Eye[i], eye[i], 1e-3)
	}

	assert.Equal(t, cfg.Camera.Far, cam.Far())
	assert.Equal(t, float32(1), newCamera(cfg, 0, 0, common.Vec3{}, common.Vec3{}).Aspect())
}

func TestFarPlaneCoversGrid(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, cfg.Camera.Far, farPlane(cfg, common.Vec3{-10, -10, -1}, common.Vec3{10, 10, 1}))

	far := farPlane(cfg, common.Vec3{-2000, -2000, -1}, common.Vec3{2000, 2000, 1})
	assert.Greater(t, far, cfg.Camera.Far)
}

type recordingTarget struct {
	amplitude, frequency float32
	clear                common.Color
}

func (r *recordingTarget) SetWave(amplitude, frequency float32) {
	r.amplitude, r.frequency = amplitude, frequency
}

func (r *recordingTarget) SetClearColor(color common.Color) {
	r.clear = color
}

func TestApplyReload(t *testing.T) {
	cfg := config.Default()
	cfg.Wave.Amplitude = 0.5
	cfg.Wave.Frequency = 7
	cfg.Colors.Clear = common.ColorBlue

	target := &recordingTarget{}
	applyReload(cfg, target, target)
	assert.Equal(t, float32(0.5), target.amplitude)
	assert.Equal(t, float32(7), target.frequency)
	assert.Equal(t, common.ColorBlue, target.clear)
}

func TestApplyHeldKeys(t *testing.T) {
	ctrl := camera.NewOrbitController()
	azimuth, elevation := ctrl.Azimuth(), ctrl.Elevation()

	held := map[uint32]bool{common.KeyRight: true, common.KeyUp: true}
	applyHeldKeys(func(k uint32) bool { return held[k] }, ctrl)
	assert.InDelta(t, azimuth+ctrl.OrbitSpeed(), ctrl.Azimuth(), 1e-6)
	assert.Greater(t, ctrl.Elevation(), elevation)

	target := ctrl.Target()
	held = map[uint32]bool{common.KeyW: true}
	applyHeldKeys(func(k uint32) bool { return held[k] }, ctrl)
	assert.NotEqual(t, target, ctrl.Target(), "W pans the target")
}

func TestOrbitDrag(t *testing.T) {
	ctrl := camera.NewOrbitController()
	azimuth := ctrl.Azimuth()
	orbitDrag(ctrl, 100, 0)
	assert.InDelta(t, azimuth-100*dragSensitivity, ctrl.Azimuth(), 1e-5)
}
