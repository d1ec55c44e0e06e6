package shader

import "github.com/Carmen-Shannon/wavegrid/engine/solid"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithVertexLayout selects the vertex layout whose SolidVertex struct is injected for
// //@wave:include solid_vertex. Defaults to solid.LayoutFull.
//
// Parameters:
//   - layout: the vertex layout of the buffers the shader reads
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layout
func WithVertexLayout(layout solid.Layout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayout = layout
	}
}
