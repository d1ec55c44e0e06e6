package solid

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/wavegrid/common"
)

// GPUSolidVertexSource is the canonical WGSL definition of the SolidVertex input struct.
// Matches the full layout of GPUSolidVertex exactly (48 bytes).
//
//go:embed assets/solid_vertex.wgsl
var GPUSolidVertexSource string

// GPUSolidVertex is the CPU-side mirror of one vertex in a solid's buffer.
// Size: 48 bytes, all float32 so no padding is introduced.
type GPUSolidVertex struct {
	Position common.Vec3  // offset  0: world-space position (vec3<f32>)
	Color    common.Color // offset 12: face color (vec4<f32>)
	Tint     common.Color // offset 28: per-solid tint (vec4<f32>)
	Phase    float32      // offset 44: animation phase (f32)
}

// Size returns the size of the GPUSolidVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUSolidVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex in the full layout.
//
// Returns:
//   - []byte: the serialized 48 byte buffer
func (g *GPUSolidVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalLayout(buf, LayoutFull)
	return buf
}

// MarshalLayout writes the fields retained by layout into dst as little-endian float32 values.
// dst must hold at least layout.BytesPerVertex() bytes.
//
// Parameters:
//   - dst: the destination buffer
//   - layout: the vertex layout selecting which fields are written
//
// Returns:
//   - int: the number of bytes written
func (g *GPUSolidVertex) MarshalLayout(dst []byte, layout Layout) int {
	off := 0
	put := func(vals ...float32) {
		for _, v := range vals {
			binary.LittleEndian.PutUint32(dst[off:off+4], math.Float32bits(v))
			off += 4
		}
	}
	put(g.Position[:]...)
	put(g.Color[:]...)
	if layout.Has(AttributeTint) {
		put(g.Tint[:]...)
	}
	if layout.Has(AttributePhase) {
		put(g.Phase)
	}
	return off
}

// UnmarshalLayout decodes one vertex of the given layout from src.
// Fields not present in the layout are left zero.
//
// Parameters:
//   - src: the source buffer, at least layout.BytesPerVertex() bytes
//   - layout: the layout src was written with
//
// Returns:
//   - GPUSolidVertex: the decoded vertex
func UnmarshalLayout(src []byte, layout Layout) GPUSolidVertex {
	var g GPUSolidVertex
	off := 0
	get := func(vals []float32) {
		for i := range vals {
			vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[off : off+4]))
			off += 4
		}
	}
	get(g.Position[:])
	get(g.Color[:])
	if layout.Has(AttributeTint) {
		get(g.Tint[:])
	}
	if layout.Has(AttributePhase) {
		var p [1]float32
		get(p[:])
		g.Phase = p[0]
	}
	return g
}
