package solid

import (
	"maps"

	"github.com/Carmen-Shannon/wavegrid/common"
)

// solid is the implementation of the Solid interface.
// All fields are fixed at construction; buffer is generated once and never mutated.
type solid struct {
	position   common.Vec3
	size       common.Vec3
	faceColors map[FaceKey]common.Color
	tint       common.Color
	phase      float32
	layout     Layout

	buffer []byte
}

// Solid is a unit cube instance with a position, size, per-face colors, a tint and an animation phase.
// Its vertex buffer is generated once on construction and cached for the solid's lifetime.
type Solid interface {
	// Position returns the translation applied to the cube corners before scaling.
	//
	// Returns:
	//   - common.Vec3: the position offset
	Position() common.Vec3

	// Size returns the per-axis scale applied after translation.
	//
	// Returns:
	//   - common.Vec3: the scale factors
	Size() common.Vec3

	// FaceColor returns the color registered for the face spanning the given axis pair.
	//
	// Parameters:
	//   - key: the axis pair of the face
	//
	// Returns:
	//   - common.Color: the face color
	FaceColor(key FaceKey) common.Color

	// Tint returns the uniform tint written to every vertex.
	//
	// Returns:
	//   - common.Color: the tint
	Tint() common.Color

	// Phase returns the animation phase written to every vertex.
	//
	// Returns:
	//   - float32: the phase
	Phase() float32

	// Layout returns the vertex layout the buffer was generated with.
	//
	// Returns:
	//   - Layout: the vertex layout
	Layout() Layout

	// Len returns the length of the cached vertex buffer in bytes.
	//
	// Returns:
	//   - int: VerticesPerSolid × Layout().BytesPerVertex()
	Len() int

	// Bytes returns a copy of the cached vertex buffer.
	//
	// Returns:
	//   - []byte: the vertex bytes
	Bytes() []byte

	// CopyTo copies the cached vertex buffer into dst.
	//
	// Parameters:
	//   - dst: the destination slice
	//
	// Returns:
	//   - int: the number of bytes copied
	CopyTo(dst []byte) int

	// Vertices decodes the cached buffer back into vertex records.
	//
	// Returns:
	//   - []GPUSolidVertex: the VerticesPerSolid vertices in emission order
	Vertices() []GPUSolidVertex
}

var _ Solid = &solid{}

// NewSolid creates a new Solid with the provided options applied over the defaults
// (origin position, unit size, red/green/blue face colors, white tint, zero phase, full layout).
// Calling NewSolid with no options yields the default-origin solid.
//
// Parameters:
//   - options: functional options to configure the solid
//
// Returns:
//   - Solid: the constructed solid with its vertex buffer generated
func NewSolid(options ...SolidBuilderOption) Solid {
	s := &solid{
		size:       common.Vec3{1, 1, 1},
		faceColors: DefaultFaceColors(),
		tint:       common.ColorWhite,
		layout:     LayoutFull,
	}
	for _, opt := range options {
		opt(s)
	}
	s.buffer = Generate(s.position, s.phase, s.size, s.faceColors, s.tint, s.layout)
	return s
}

// NewSolidAt creates a default solid translated by position with a zero phase.
//
// Parameters:
//   - position: the position offset
//
// Returns:
//   - Solid: the constructed solid
func NewSolidAt(position common.Vec3) Solid {
	return NewSolid(WithPosition(position))
}

// NewSolidWithPhase creates a default solid translated by position with the given animation phase.
//
// Parameters:
//   - position: the position offset
//   - phase: the animation phase
//
// Returns:
//   - Solid: the constructed solid
func NewSolidWithPhase(position common.Vec3, phase float32) Solid {
	return NewSolid(WithPosition(position), WithPhase(phase))
}

func (s *solid) Position() common.Vec3 {
	return s.position
}

func (s *solid) Size() common.Vec3 {
	return s.size
}

func (s *solid) FaceColor(key FaceKey) common.Color {
	return s.faceColors[key]
}

func (s *solid) Tint() common.Color {
	return s.tint
}

func (s *solid) Phase() float32 {
	return s.phase
}

func (s *solid) Layout() Layout {
	return s.layout
}

func (s *solid) Len() int {
	return len(s.buffer)
}

func (s *solid) Bytes() []byte {
	out := make([]byte, len(s.buffer))
	copy(out, s.buffer)
	return out
}

func (s *solid) CopyTo(dst []byte) int {
	return copy(dst, s.buffer)
}

func (s *solid) Vertices() []GPUSolidVertex {
	stride := s.layout.BytesPerVertex()
	out := make([]GPUSolidVertex, 0, VerticesPerSolid)
	for off := 0; off+stride <= len(s.buffer); off += stride {
		out = append(out, UnmarshalLayout(s.buffer[off:off+stride], s.layout))
	}
	return out
}

// Generate builds the vertex buffer of a single solid.
// Each of the six faces in Faces contributes six corners; each corner c becomes a vertex
// at (c + position) × size carrying the face's color, the tint and the phase.
//
// Parameters:
//   - position: translation applied to each corner
//   - phase: animation phase written to every vertex
//   - size: per-axis scale applied after translation
//   - faceColors: color per axis pair; missing keys produce a zero color
//   - tint: uniform tint written to every vertex
//   - layout: selects which fields are serialized
//
// Returns:
//   - []byte: exactly VerticesPerSolid × layout.BytesPerVertex() bytes
func Generate(position common.Vec3, phase float32, size common.Vec3, faceColors map[FaceKey]common.Color, tint common.Color, layout Layout) []byte {
	buf := make([]byte, layout.BytesPerSolid())
	off := 0
	for _, face := range Faces {
		color := faceColors[face.Key]
		for _, corner := range face.Corners() {
			v := GPUSolidVertex{
				Position: corner.Add(position).Mul(size),
				Color:    color,
				Tint:     tint,
				Phase:    phase,
			}
			off += v.MarshalLayout(buf[off:], layout)
		}
	}
	return buf
}

// cloneFaceColors merges overrides over the defaults so every face key is present.
func cloneFaceColors(overrides map[FaceKey]common.Color) map[FaceKey]common.Color {
	out := DefaultFaceColors()
	maps.Copy(out, overrides)
	return out
}
