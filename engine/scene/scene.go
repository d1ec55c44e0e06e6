package scene

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/Carmen-Shannon/wavegrid/engine/batch"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/shader"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

// DefaultPipelineKey is the pipeline key used when WithPipelineKey is not given.
const DefaultPipelineKey = "wave"

// Scene draws one packed batch of solids with the wave shaders. The solids are uploaded once
// by Prepare; every frame afterwards only writes the frame uniform and issues a single draw.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// PipelineKey returns the key the scene's render pipeline is registered under.
	PipelineKey() string

	// Layout returns the vertex layout of the scene's solids.
	Layout() solid.Layout

	// Wave returns the current wave amplitude and frequency.
	Wave() (amplitude, frequency float32)

	// SetWave updates the wave parameters. The new values reach the GPU with the next Render.
	//
	// Parameters:
	//   - amplitude: the peak z offset in world units
	//   - frequency: the angular frequency in radians per second
	SetWave(amplitude, frequency float32)

	// Prepare builds the render pipeline, packs the solids, uploads the vertex buffer and
	// creates the frame uniform bind group. It runs once; later calls return the first result.
	//
	// Returns:
	//   - error: an error if any shader, pipeline or GPU resource could not be created
	Prepare() error

	// Update advances the camera for the next frame.
	Update()

	// Render writes the frame uniform and issues the scene's draw.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Parameters:
	//   - elapsed: seconds since the engine started running
	//
	// Returns:
	//   - error: an error if the scene is not prepared or the pipeline is missing
	Render(elapsed float32) error

	// RenderContext returns the context created by Prepare, or nil before Prepare.
	RenderContext() *renderer.RenderContext

	// Release frees the uploaded vertex buffer and the frame uniform resources.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	grid   batch.Grid
	solids []solid.Solid

	amplitude float32
	frequency float32

	pipelineKey    string
	vertexSource   string
	fragmentSource string
	vertexPath     string
	fragmentPath   string

	prepareOnce  sync.Once
	prepareErr   error
	ctx          *renderer.RenderContext
	frameBinding int
}

var _ Scene = &scene{}

// NewScene creates a new Scene drawn through the given camera and renderer.
// Panics if cam or r is nil.
//
// Parameters:
//   - name: the scene's identifier, also used as the vertex buffer label
//   - cam: the camera providing the view-projection matrix and frame uniform binding
//   - r: the renderer the scene uploads to and draws with
//   - options: optional SceneBuilderOption functions
//
// Returns:
//   - Scene: the constructed scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: camera must not be nil")
	}
	if r == nil {
		panic("scene: renderer must not be nil")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		r:              r,
		amplitude:      2,
		frequency:      2,
		pipelineKey:    DefaultPipelineKey,
		vertexSource:   shader.WaveVertexSource,
		fragmentSource: shader.WaveFragmentSource,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) PipelineKey() string {
	return s.pipelineKey
}

func (s *scene) Layout() solid.Layout {
	if s.grid != nil {
		return s.grid.Layout()
	}
	if len(s.solids) > 0 {
		return s.solids[0].Layout()
	}
	return solid.LayoutFull
}

func (s *scene) Wave() (float32, float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.amplitude, s.frequency
}

func (s *scene) SetWave(amplitude, frequency float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amplitude = amplitude
	s.frequency = frequency
}

func (s *scene) Prepare() error {
	s.prepareOnce.Do(func() {
		s.prepareErr = s.prepare()
		if s.prepareErr != nil {
			log.Printf("[Scene] %s: prepare failed: %v", s.name, s.prepareErr)
		}
	})
	return s.prepareErr
}

func (s *scene) prepare() error {
	layout := s.Layout()

	p, err := s.buildPipeline(layout)
	if err != nil {
		return err
	}
	if err := s.r.RegisterPipelines(p); err != nil {
		return err
	}

	data, count := s.pack()
	ctx, err := s.r.Upload(s.name, data, count)
	if err != nil {
		return err
	}

	group, binding, err := FrameBinding(p.Shader(shader.ShaderTypeVertex).Declarations())
	if err != nil {
		ctx.Release()
		return err
	}
	descriptor, ok := p.BindGroupLayoutDescriptors()[group]
	if !ok {
		ctx.Release()
		return fmt.Errorf("scene %s: no bind group layout for group %d", s.name, group)
	}
	// scenes sharing a camera share its frame uniform bind group
	provider := s.cam.BindGroupProvider()
	if provider.BindGroup() == nil {
		if err := s.r.InitBindGroup(provider, descriptor); err != nil {
			ctx.Release()
			return fmt.Errorf("scene %s: frame uniform bind group: %w", s.name, err)
		}
	}
	ctx.SetBindGroup(group, provider)

	s.mu.Lock()
	s.ctx = ctx
	s.frameBinding = binding
	s.mu.Unlock()

	log.Printf("[Scene] %s: prepared %d vertices (%s layout, stride %d)", s.name, count, layout, ctx.Stride)
	return nil
}

// buildPipeline creates the vertex and fragment shaders for layout and wraps them in a
// render pipeline. Configured shader paths replace the embedded sources.
func (s *scene) buildPipeline(layout solid.Layout) (pipeline.Pipeline, error) {
	vertexSource, err := sourceOrFile(s.vertexSource, s.vertexPath)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := sourceOrFile(s.fragmentSource, s.fragmentPath)
	if err != nil {
		return nil, err
	}

	vs, err := shader.ParseShader(s.pipelineKey+"_vertex", shader.ShaderTypeVertex, vertexSource, shader.WithVertexLayout(layout))
	if err != nil {
		return nil, err
	}
	fs, err := shader.ParseShader(s.pipelineKey+"_fragment", shader.ShaderTypeFragment, fragmentSource, shader.WithVertexLayout(layout))
	if err != nil {
		return nil, err
	}

	p := pipeline.NewPipeline(s.pipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// pack returns the scene's solids as one contiguous vertex buffer.
func (s *scene) pack() ([]byte, uint32) {
	if s.grid != nil {
		return s.grid.Pack(), s.grid.VertexCount()
	}
	return batch.Pack(s.solids), batch.VertexCount(len(s.solids))
}

func sourceOrFile(source, path string) (string, error) {
	if path == "" {
		return source, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return string(data), nil
}

// FrameBinding finds the group and binding of the frame uniform among a shader's declarations.
//
// Parameters:
//   - declarations: the group annotations of the vertex shader
//
// Returns:
//   - int: the @group index
//   - int: the @binding index
//   - error: an error if no frame_uniform binding is declared
func FrameBinding(declarations []shader.Annotation) (int, int, error) {
	for _, decl := range declarations {
		if decl.Type != shader.AnnotationTypeBindingGroup || len(decl.Args) < 3 {
			continue
		}
		if decl.Args[2] != shader.AnnotationArgFrameUniform || decl.Group == nil || decl.Binding == nil {
			continue
		}
		return *decl.Group, *decl.Binding, nil
	}
	return 0, 0, fmt.Errorf("vertex shader declares no %s binding", shader.AnnotationArgFrameUniform)
}

func (s *scene) Update() {
	s.cam.Update()
}

func (s *scene) Render(elapsed float32) error {
	s.mu.RLock()
	ctx := s.ctx
	binding := s.frameBinding
	amplitude, frequency := s.amplitude, s.frequency
	s.mu.RUnlock()

	if ctx == nil {
		return fmt.Errorf("scene %s: not prepared", s.name)
	}

	uniform := s.cam.FrameUniform(elapsed, amplitude, frequency)
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: s.cam.BindGroupProvider(),
		Binding:  binding,
		Data:     uniform.Marshal(),
	}})
	return s.r.Draw(s.pipelineKey, ctx)
}

func (s *scene) RenderContext() *renderer.RenderContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		s.ctx.Release()
		s.ctx = nil
	}
	s.cam.BindGroupProvider().Release()
	if s.grid != nil {
		s.grid.Close()
	}
}
