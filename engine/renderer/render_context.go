package renderer

import (
	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderContext is the explicit per-scene rendering state: the device and queue it was uploaded
// with, the packed vertex buffer and the bind groups set before each draw. It is created by
// Renderer.Upload and owned by the scene that draws it.
type RenderContext struct {
	// Device and Queue are the handles the vertex buffer was created on.
	Device *wgpu.Device
	Queue  *wgpu.Queue

	// Mesh holds the uploaded vertex buffer and its vertex count.
	Mesh bind_group_provider.BindGroupProvider

	// Stride is the vertex stride in bytes of the uploaded buffer.
	Stride uint64

	// BindGroups are set on the render pass in order, index i at @group(i).
	// The frame uniform provider sits at index 0 for the wave shaders.
	BindGroups []bind_group_provider.BindGroupProvider
}

// VertexBuffer returns the uploaded vertex buffer, or nil for an empty upload.
func (c *RenderContext) VertexBuffer() *wgpu.Buffer {
	if c == nil || c.Mesh == nil {
		return nil
	}
	return c.Mesh.VertexBuffer()
}

// VertexCount returns the number of vertices to draw.
func (c *RenderContext) VertexCount() uint32 {
	if c == nil || c.Mesh == nil {
		return 0
	}
	return c.Mesh.VertexCount()
}

// Drawable reports whether the context holds anything to draw. An empty upload produces a
// context that draws nothing.
func (c *RenderContext) Drawable() bool {
	return c.VertexCount() > 0 && c.VertexBuffer() != nil
}

// SetBindGroup stores a provider at the given group index, growing the list as needed.
//
// Parameters:
//   - group: the @group index
//   - provider: the provider whose bind group is set at that index
func (c *RenderContext) SetBindGroup(group int, provider bind_group_provider.BindGroupProvider) {
	for len(c.BindGroups) <= group {
		c.BindGroups = append(c.BindGroups, nil)
	}
	c.BindGroups[group] = provider
}

// Release frees the vertex buffer. Bind group providers are released by their owners.
func (c *RenderContext) Release() {
	if c == nil || c.Mesh == nil {
		return
	}
	c.Mesh.Release()
}
