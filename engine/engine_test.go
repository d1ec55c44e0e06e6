package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/wavegrid/engine/scene"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameRenderer counts frame lifecycle calls.
type frameRenderer struct {
	mu         sync.Mutex
	begins     int
	ends       int
	presents   int
	resizes    [][2]int
	beginError error
}

var _ renderer.Renderer = &frameRenderer{}

func (r *frameRenderer) Pipeline(string) pipeline.Pipeline { return nil }

func (r *frameRenderer) RegisterPipelines(...pipeline.Pipeline) error { return nil }

func (r *frameRenderer) Upload(string, []byte, uint32) (*renderer.RenderContext, error) {
	return &renderer.RenderContext{}, nil
}

func (r *frameRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (r *frameRenderer) WriteBuffers([]bind_group_provider.BufferWrite) {}

func (r *frameRenderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins++
	return r.beginError
}

func (r *frameRenderer) Draw(string, *renderer.RenderContext) error { return nil }

func (r *frameRenderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *frameRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
}

func (r *frameRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizes = append(r.resizes, [2]int{width, height})
}

func (r *frameRenderer) SetPresentMode(renderer.PresentMode) {}

func (r *frameRenderer) SetClearColor(common.Color) {}

func (r *frameRenderer) Release() {}

// stubScene records the engine's calls into a scene.
type stubScene struct {
	mu         sync.Mutex
	name       string
	active     bool
	cam        camera.Camera
	r          renderer.Renderer
	log        *[]string
	prepareErr error
	renderErr  error
	prepared   int
	updates    int
	lastTime   float32
}

var _ scene.Scene = &stubScene{}

func newStubScene(name string, active bool, r renderer.Renderer, log *[]string) *stubScene {
	return &stubScene{name: name, active: active, cam: camera.NewCamera(), r: r, log: log}
}

func (s *stubScene) Name() string { return s.name }

func (s *stubScene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *stubScene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *stubScene) Camera() camera.Camera { return s.cam }

func (s *stubScene) Renderer() renderer.Renderer { return s.r }

func (s *stubScene) PipelineKey() string { return "stub" }

func (s *stubScene) Layout() solid.Layout { return solid.LayoutFull }

func (s *stubScene) Wave() (float32, float32) { return 0, 0 }

func (s *stubScene) SetWave(float32, float32) {}

func (s *stubScene) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared++
	return s.prepareErr
}

func (s *stubScene) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
}

func (s *stubScene) Render(elapsed float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTime = elapsed
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
	return s.renderErr
}

func (s *stubScene) RenderContext() *renderer.RenderContext { return nil }

func (s *stubScene) Release() {}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine(WithScene(3, newStubScene("three", true, nil, nil)))
	e.AddScene(1, newStubScene("one", true, nil, nil))

	assert.Equal(t, "three", e.Scene(3).Name())
	assert.Nil(t, e.Scene(2))

	scenes := e.Scenes()
	require.Len(t, scenes, 2)
	delete(scenes, 1)
	assert.NotNil(t, e.Scene(1), "Scenes returns a copy")

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Nil(t, e.Window())
	assert.Zero(t, e.Elapsed())
}

func TestRenderFrameOrder(t *testing.T) {
	r := &frameRenderer{}
	var order []string
	e := NewEngine().(*engine)
	e.AddScene(5, newStubScene("top", true, r, &order))
	e.AddScene(-1, newStubScene("bottom", true, r, &order))
	e.AddScene(2, newStubScene("hidden", false, r, &order))
	failing := newStubScene("failing", true, r, &order)
	failing.renderErr = errors.New("boom")
	e.AddScene(3, failing)

	assert.Equal(t, 2, e.renderFrame(1.25))
	assert.Equal(t, []string{"bottom", "failing", "top"}, order)
	assert.Equal(t, 1, r.begins)
	assert.Equal(t, 1, r.ends)
	assert.Equal(t, 1, r.presents)
	assert.Equal(t, float32(1.25), e.Scene(5).(*stubScene).lastTime)
}

func TestRenderFrameSkipsUnavailableSurface(t *testing.T) {
	r := &frameRenderer{beginError: errors.New("outdated")}
	var order []string
	e := NewEngine(WithScene(0, newStubScene("only", true, r, &order))).(*engine)

	assert.Zero(t, e.renderFrame(0))
	assert.Empty(t, order)
	assert.Zero(t, r.ends)
	assert.Zero(t, r.presents)

	assert.Zero(t, NewEngine().(*engine).renderFrame(0), "no scenes")
}

func TestTickUpdatesActiveScenes(t *testing.T) {
	active := newStubScene("active", true, nil, nil)
	idle := newStubScene("idle", false, nil, nil)
	e := NewEngine(WithScene(0, active), WithScene(1, idle)).(*engine)

	var got float32
	e.SetTickCallback(func(dt float32) { got = dt })
	e.tick(0.016)

	assert.Equal(t, 1, active.updates)
	assert.Zero(t, idle.updates)
	assert.Equal(t, float32(0.016), got)
}

func TestResize(t *testing.T) {
	shared := &frameRenderer{}
	a := newStubScene("a", true, shared, nil)
	b := newStubScene("b", false, shared, nil)
	e := NewEngine(WithScene(0, a), WithScene(1, b)).(*engine)

	e.resize(1600, 800)
	assert.Equal(t, [][2]int{{1600, 800}}, shared.resizes, "a shared renderer is resized once")
	assert.Equal(t, float32(2), a.cam.Aspect())
	assert.Equal(t, float32(2), b.cam.Aspect())

	e.resize(0, 0)
	assert.Len(t, shared.resizes, 1, "minimised windows are ignored")
}

func TestRunPrepareError(t *testing.T) {
	s := newStubScene("broken", true, &frameRenderer{}, nil)
	s.prepareErr = errors.New("no shader")
	e := NewEngine(WithScene(0, s))

	err := e.Run()
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken")
}

func TestRunUntilQuit(t *testing.T) {
	r := &frameRenderer{}
	s := newStubScene("wave", true, r, nil)
	e := NewEngine(WithScene(0, s), WithTickRate(240), WithRenderFrameLimit(240))

	rendered := make(chan float32, 1)
	e.SetRenderCallback(func(elapsed float32) {
		select {
		case rendered <- elapsed:
		default:
		}
	})

	done := make(chan error, 1)
	go func() { done <- e.Run() }()

	select {
	case elapsed := <-rendered:
		assert.GreaterOrEqual(t, elapsed, float32(0))
	case <-time.After(5 * time.Second):
		t.Fatal("no frame rendered")
	}

	e.Quit()
	e.Quit()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, 1, s.prepared)
}

func TestRateFor(t *testing.T) {
	assert.Equal(t, time.Second/60, rateFor(0, 60))
	assert.Equal(t, time.Second/4, rateFor(4, 60))
	assert.Equal(t, 500*time.Millisecond, rateFor(2, 60))
}
