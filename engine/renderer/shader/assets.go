package shader

import _ "embed"

// WaveVertexSource is the default vertex shader. It offsets each vertex along z by
// amplitude * sin(frequency * time + phase) and multiplies the face color by the tint.
//
//go:embed assets/wave_vertex.wgsl
var WaveVertexSource string

// WaveFragmentSource is the default fragment shader, writing the interpolated vertex color.
//
//go:embed assets/wave_fragment.wgsl
var WaveFragmentSource string
