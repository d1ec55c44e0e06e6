package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/wavegrid/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           common.Color
}

// Renderer is the high-level rendering API. It owns the GPU device through its backend,
// caches render pipelines by key and draws uploaded vertex buffers one RenderContext at a time.
//
// A frame is rendered as BeginFrame, one or more Draw calls, EndFrame and Present.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline for each Pipeline and caches it by key.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Upload copies packed vertex bytes into a new GPU vertex buffer once and returns the
	// RenderContext that draws it. Empty data yields a context that draws nothing.
	//
	// Parameters:
	//   - label: debug label for the buffer
	//   - data: the packed vertex bytes
	//   - vertexCount: the number of vertices in data
	//
	// Returns:
	//   - *RenderContext: the context holding the uploaded buffer
	//   - error: an error if the buffer could not be created
	Upload(label string, data []byte, vertexCount uint32) (*RenderContext, error)

	// InitBindGroup creates the buffers and bind group for a provider from a layout descriptor.
	//
	// Parameters:
	//   - provider: the BindGroupProvider receiving the GPU resources
	//   - descriptor: the layout descriptor parsed from the pipeline's shaders
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer writes, such as the per-frame uniform.
	//
	// Parameters:
	//   - writes: the writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired; the frame should be skipped
	BeginFrame() error

	// Draw issues one non-indexed draw of ctx with the pipeline registered under pipelineKey.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - ctx: the render context to draw
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	Draw(pipelineKey string, ctx *RenderContext) error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the frame to the window surface.
	Present()

	// Resize reconfigures the surface and its attachments for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode. It takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the color the frame is cleared to.
	SetClearColor(color common.Color)

	// Release frees every cached pipeline reference and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window. The backend requests an adapter
// compatible with the window's surface and panics when no device can be created.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface is rendered to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    common.ColorWhite,
	}

	// options run first so forceFallbackAdapter is known before the adapter request
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(window.Width(), window.Height())
	log.Printf("[Renderer] initialized %dx%d (msaa=%d, software=%t)", window.Width(), window.Height(), r.msaa, r.forceFallbackAdapter)
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Upload(label string, data []byte, vertexCount uint32) (*RenderContext, error) {
	ctx := &RenderContext{
		Device: r.backend.Device(),
		Queue:  r.backend.Queue(),
		Mesh:   bind_group_provider.NewBindGroupProvider(label),
	}
	if vertexCount > 0 {
		ctx.Stride = uint64(len(data)) / uint64(vertexCount)
	}
	if len(data) == 0 || vertexCount == 0 {
		return ctx, nil
	}

	buf, err := r.backend.CreateVertexBuffer(label, data)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	ctx.Mesh.SetVertexBuffer(buf, vertexCount)
	log.Printf("[Renderer] uploaded %s: %d vertices, %d bytes", label, vertexCount, len(data))
	return ctx, nil
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(pipelineKey string, ctx *RenderContext) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.backend.Draw(p, ctx)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color common.Color) {
	r.backend.SetClearColor(color)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
