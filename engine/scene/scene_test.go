package scene

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/batch"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/shader"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	label string
	size  int
	count uint32
}

// recordingRenderer stands in for the GPU renderer and records what a scene asks of it.
type recordingRenderer struct {
	mu         sync.Mutex
	pipelines  map[string]pipeline.Pipeline
	uploads    []upload
	bindGroups map[string]wgpu.BindGroupLayoutDescriptor
	writes     []bind_group_provider.BufferWrite
	draws      []string
}

var _ renderer.Renderer = &recordingRenderer{}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		pipelines:  make(map[string]pipeline.Pipeline),
		bindGroups: make(map[string]wgpu.BindGroupLayoutDescriptor),
	}
}

func (r *recordingRenderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[key]
}

func (r *recordingRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		r.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (r *recordingRenderer) Upload(label string, data []byte, vertexCount uint32) (*renderer.RenderContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, upload{label: label, size: len(data), count: vertexCount})
	ctx := &renderer.RenderContext{Mesh: bind_group_provider.NewBindGroupProvider(label)}
	if vertexCount > 0 {
		ctx.Stride = uint64(len(data)) / uint64(vertexCount)
	}
	ctx.Mesh.SetVertexBuffer(nil, vertexCount)
	return ctx, nil
}

func (r *recordingRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindGroups[provider.Label()] = descriptor
	return nil
}

func (r *recordingRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, writes...)
}

func (r *recordingRenderer) BeginFrame() error { return nil }

func (r *recordingRenderer) Draw(pipelineKey string, ctx *renderer.RenderContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = append(r.draws, pipelineKey)
	return nil
}

func (r *recordingRenderer) EndFrame() {}

func (r *recordingRenderer) Present() {}

func (r *recordingRenderer) Resize(width, height int) {}

func (r *recordingRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (r *recordingRenderer) SetClearColor(color common.Color) {}

func (r *recordingRenderer) Release() {}

func float32At(data []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
}

func TestNewScenePanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewScene("s", nil, newRecordingRenderer()) })
	assert.Panics(t, func() { NewScene("s", camera.NewCamera(), nil) })
}

func TestSceneDefaultsAndOptions(t *testing.T) {
	s := NewScene("defaults", camera.NewCamera(), newRecordingRenderer())
	assert.Equal(t, "defaults", s.Name())
	assert.False(t, s.Active())
	assert.Equal(t, DefaultPipelineKey, s.PipelineKey())
	assert.Equal(t, solid.LayoutFull, s.Layout())
	amp, freq := s.Wave()
	assert.Equal(t, float32(2), amp)
	assert.Equal(t, float32(2), freq)
	assert.Nil(t, s.RenderContext())

	s = NewScene("custom", camera.NewCamera(), newRecordingRenderer(),
		WithActive(true),
		WithWave(0.5, 3),
		WithPipelineKey("minimal"),
		WithSolids(solid.NewSolid(solid.WithLayout(solid.LayoutMinimal))),
	)
	assert.True(t, s.Active())
	assert.Equal(t, "minimal", s.PipelineKey())
	assert.Equal(t, solid.LayoutMinimal, s.Layout())
	amp, freq = s.Wave()
	assert.Equal(t, float32(0.5), amp)
	assert.Equal(t, float32(3), freq)

	s.SetActive(false)
	assert.False(t, s.Active())
}

func TestScenePrepareGrid(t *testing.T) {
	r := newRecordingRenderer()
	cam := camera.NewCamera()
	grid := batch.NewGrid(batch.WithRows(2), batch.WithColumns(3), batch.WithWorkers(2))
	s := NewScene("grid", cam, r, WithGrid(grid))
	defer s.Release()

	require.NoError(t, s.Prepare())
	require.NoError(t, s.Prepare())

	require.Len(t, r.uploads, 1, "the vertex buffer is uploaded once")
	assert.Equal(t, "grid", r.uploads[0].label)
	assert.Equal(t, uint32(6*36), r.uploads[0].count)
	assert.Equal(t, 6*36*48, r.uploads[0].size)

	p := r.Pipeline(DefaultPipelineKey)
	require.NotNil(t, p)
	assert.Equal(t, solid.LayoutFull, p.Shader(shader.ShaderTypeVertex).SolidLayout())

	descriptor, ok := r.bindGroups[cam.BindGroupProvider().Label()]
	require.True(t, ok, "frame uniform bind group initialised on the camera provider")
	require.Len(t, descriptor.Entries, 1)
	assert.Equal(t, uint64(80), descriptor.Entries[0].Buffer.MinBindingSize)

	ctx := s.RenderContext()
	require.NotNil(t, ctx)
	assert.Equal(t, uint64(48), ctx.Stride)
	require.Len(t, ctx.BindGroups, 1)
	assert.Equal(t, cam.BindGroupProvider().Label(), ctx.BindGroups[0].Label())
}

func TestScenePrepareReducedLayout(t *testing.T) {
	r := newRecordingRenderer()
	solids := []solid.Solid{
		solid.NewSolid(solid.WithLayout(solid.LayoutNoTint)),
		solid.NewSolid(solid.WithLayout(solid.LayoutNoTint), solid.WithPosition(common.Vec3{6, 0, 0})),
	}
	s := NewScene("no_tint", camera.NewCamera(), r, WithSolids(solids...), WithPipelineKey("wave_no_tint"))

	require.NoError(t, s.Prepare())
	require.Len(t, r.uploads, 1)
	assert.Equal(t, 2*36*32, r.uploads[0].size)
	assert.Equal(t, uint64(32), s.RenderContext().Stride)

	p := r.Pipeline("wave_no_tint")
	require.NotNil(t, p)
	layouts := p.Shader(shader.ShaderTypeVertex).VertexLayout(0)
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
}

func TestSceneRender(t *testing.T) {
	r := newRecordingRenderer()
	cam := camera.NewCamera()
	s := NewScene("render", cam, r, WithSolids(solid.NewSolid()), WithWave(1.5, 4))

	assert.Error(t, s.Render(0), "render before prepare")
	assert.Empty(t, r.draws)

	require.NoError(t, s.Prepare())
	s.Update()
	require.NoError(t, s.Render(2.5))

	require.Len(t, r.writes, 1)
	w := r.writes[0]
	assert.Equal(t, cam.BindGroupProvider().Label(), w.Provider.Label())
	assert.Equal(t, 0, w.Binding)
	require.Len(t, w.Data, 80)
	assert.Equal(t, float32(2.5), float32At(w.Data, 64))
	assert.Equal(t, float32(1.5), float32At(w.Data, 68))
	assert.Equal(t, float32(4), float32At(w.Data, 72))

	vp := cam.ViewProjectionMatrix()
	assert.Equal(t, vp[0], float32At(w.Data, 0))
	assert.Equal(t, vp[15], float32At(w.Data, 60))

	s.SetWave(0.25, 1)
	require.NoError(t, s.Render(3))
	require.Len(t, r.writes, 2)
	assert.Equal(t, float32(0.25), float32At(r.writes[1].Data, 68))
	assert.Equal(t, float32(1), float32At(r.writes[1].Data, 72))

	assert.Equal(t, []string{DefaultPipelineKey, DefaultPipelineKey}, r.draws)
}

func TestScenePrepareErrors(t *testing.T) {
	t.Run("missing shader file", func(t *testing.T) {
		r := newRecordingRenderer()
		s := NewScene("missing", camera.NewCamera(), r,
			WithSolids(solid.NewSolid()),
			WithShaderPaths(filepath.Join(t.TempDir(), "nope.wgsl"), ""),
		)
		err := s.Prepare()
		require.Error(t, err)
		assert.Equal(t, err, s.Prepare(), "the first result is kept")
		assert.Empty(t, r.uploads)
	})

	t.Run("no frame binding", func(t *testing.T) {
		r := newRecordingRenderer()
		vertex := "//@wave:include solid_vertex\n" +
			"@vertex\n" +
			"fn vs_main(v: SolidVertex) -> @builtin(position) vec4<f32> {\n" +
			"    return vec4<f32>(v.position, 1.0);\n" +
			"}\n"
		fragment := "@fragment\n" +
			"fn fs_main() -> @location(0) vec4<f32> {\n" +
			"    return vec4<f32>(1.0, 1.0, 1.0, 1.0);\n" +
			"}\n"
		s := NewScene("unbound", camera.NewCamera(), r,
			WithSolids(solid.NewSolid()),
			WithShaderSources(vertex, fragment),
		)
		assert.ErrorContains(t, s.Prepare(), "frame_uniform")
		assert.Nil(t, s.RenderContext())
	})
}

func TestFrameBinding(t *testing.T) {
	_, _, err := FrameBinding(nil)
	assert.Error(t, err)

	vs := shader.NewShaderFromSource("vs", shader.ShaderTypeVertex, shader.WaveVertexSource)
	group, binding, err := FrameBinding(vs.Declarations())
	require.NoError(t, err)
	assert.Equal(t, 0, group)
	assert.Equal(t, 0, binding)
}

func TestSceneSetWaveConcurrent(t *testing.T) {
	s := NewScene("concurrent", camera.NewCamera(), newRecordingRenderer())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetWave(float32(i), float32(i))
		}()
		go func() {
			defer wg.Done()
			amp, freq := s.Wave()
			assert.Equal(t, amp, freq)
		}()
	}
	wg.Wait()
}
