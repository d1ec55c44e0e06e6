package engine

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/wavegrid/engine/profiler"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer"
	"github.com/Carmen-Shannon/wavegrid/engine/scene"
	"github.com/Carmen-Shannon/wavegrid/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render and window threads.
type engine struct {
	mu sync.RWMutex

	tickRateChannel chan time.Duration // dynamic tick rate updates while running

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickRate       time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(elapsed float32)

	scenes map[int]scene.Scene

	start      time.Time
	frameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window message loop.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after the active
	// scenes have updated their cameras. Use it for input polling and camera control.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the elapsed seconds since Run
	SetRenderCallback(callback func(elapsed float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	Scenes() map[int]scene.Scene

	// Elapsed returns the seconds since Run started, or 0 before Run.
	Elapsed() float32

	// Run prepares every registered scene, starts the tick and render goroutines and runs the
	// window message loop on the calling thread. It blocks until the window closes or Quit is
	// called. Without a window it blocks until Quit.
	//
	// Returns:
	//   - error: an error if a scene fails to prepare
	Run() error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		tickRate:        time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	for _, s := range e.sortedScenes(false) {
		if err := s.Prepare(); err != nil {
			return fmt.Errorf("prepare scene %s: %w", s.Name(), err)
		}
	}

	e.mu.Lock()
	e.start = time.Now()
	e.mu.Unlock()
	e.running.Store(true)

	e.wg.Add(2)
	go e.handleTick()
	go e.handleRender()

	if e.window != nil {
		e.window.ProcessMessages()
		e.Quit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	return nil
}

// Quit closes the quit channel once, stopping the tick and render goroutines.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Elapsed() float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.start.IsZero() {
		return 0
	}
	return float32(time.Since(e.start).Seconds())
}

// resize reconfigures each distinct renderer's surface and every scene camera's aspect.
// A zero-sized framebuffer (minimised window) is ignored.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	resized := make(map[renderer.Renderer]struct{})
	for _, s := range e.sortedScenes(false) {
		if r := s.Renderer(); r != nil {
			if _, done := resized[r]; !done {
				r.Resize(width, height)
				resized[r] = struct{}{}
			}
		}
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

// sortedScenes returns the registered scenes in ascending z-index order, optionally only the
// active ones.
func (e *engine) sortedScenes(activeOnly bool) []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]scene.Scene, 0, len(e.scenes))
	for _, k := range slices.Sorted(maps.Keys(e.scenes)) {
		s := e.scenes[k]
		if activeOnly && !s.Active() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// handleTick runs the fixed-rate tick loop in its own goroutine. Each tick updates the active
// scenes' cameras, then fires the tick callback. Listens for rate changes via tickRateChannel.
func (e *engine) handleTick() {
	defer e.wg.Done()

	e.mu.RLock()
	rate := e.tickRate
	e.mu.RUnlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

func (e *engine) tick(dt float32) {
	for _, s := range e.sortedScenes(true) {
		s.Update()
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

// handleRender runs the render loop in its own goroutine until quit, optionally frame-limited.
// A panic inside the loop is logged and turned into a quit so the window loop can unwind.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.Quit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		frameStart := time.Now()
		elapsed := e.Elapsed()
		e.renderFrame(elapsed)

		if e.renderCallback != nil {
			e.renderCallback(elapsed)
		}
		if e.profilingEnabled.Load() {
			e.profiler.Tick()
		}

		if limit := e.currentFrameLimit(); limit > 0 {
			if remaining := limit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame draws all active scenes in ascending z-index order within one render pass of
// the first active scene's renderer. It returns the number of scenes drawn.
func (e *engine) renderFrame(elapsed float32) int {
	active := e.sortedScenes(true)
	if len(active) == 0 {
		return 0
	}
	r := active[0].Renderer()
	if r == nil {
		return 0
	}
	if err := r.BeginFrame(); err != nil {
		// the surface can be briefly unavailable while resizing
		return 0
	}

	drawn := 0
	for _, s := range active {
		if err := s.Render(elapsed); err != nil {
			log.Printf("[Engine] render scene %s: %v", s.Name(), err)
			continue
		}
		drawn++
	}
	r.EndFrame()
	r.Present()
	return drawn
}

func (e *engine) currentFrameLimit() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.frameLimit
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := rateFor(fps, 60)

	e.mu.Lock()
	e.tickRate = newRate
	e.mu.Unlock()

	if !e.running.Load() {
		return
	}
	// replace any pending update with the newest rate
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(elapsed float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = rateFor(fps, fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.scenes)
}

// rateFor converts a per-second rate into a period, using fallback for non-positive rates.
func rateFor(fps, fallback float64) time.Duration {
	if fps <= 0 {
		fps = fallback
	}
	return time.Duration(float64(time.Second) / fps)
}
