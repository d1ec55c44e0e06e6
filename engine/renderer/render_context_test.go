package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/wavegrid/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContextEmpty(t *testing.T) {
	var nilCtx *RenderContext
	assert.False(t, nilCtx.Drawable())
	assert.Zero(t, nilCtx.VertexCount())
	assert.Nil(t, nilCtx.VertexBuffer())
	nilCtx.Release()

	ctx := &RenderContext{Mesh: bind_group_provider.NewBindGroupProvider("grid")}
	assert.False(t, ctx.Drawable())

	// a count without a buffer is still not drawable
	ctx.Mesh.SetVertexBuffer(nil, 36)
	assert.Equal(t, uint32(36), ctx.VertexCount())
	assert.False(t, ctx.Drawable())
}

func TestRenderContextSetBindGroup(t *testing.T) {
	ctx := &RenderContext{}
	frame := bind_group_provider.NewBindGroupProvider("frame")
	extra := bind_group_provider.NewBindGroupProvider("extra")

	ctx.SetBindGroup(2, extra)
	require.Len(t, ctx.BindGroups, 3)
	assert.Nil(t, ctx.BindGroups[0])
	assert.Equal(t, "extra", ctx.BindGroups[2].Label())

	ctx.SetBindGroup(0, frame)
	require.Len(t, ctx.BindGroups, 3)
	assert.Equal(t, "frame", ctx.BindGroups[0].Label())
}

func TestParsePresentMode(t *testing.T) {
	for name, want := range map[string]PresentMode{
		"":          PresentModeVSync,
		"fifo":      PresentModeVSync,
		"vsync":     PresentModeVSync,
		"immediate": PresentModeUncapped,
		"uncapped":  PresentModeUncapped,
	} {
		got, err := ParsePresentMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParsePresentMode("mailbox")
	assert.Error(t, err)
}
