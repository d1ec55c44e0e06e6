package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFrameUniformSource is the canonical WGSL definition of the FrameUniform struct.
// Matches GPUFrameUniform layout exactly (80 bytes).
//
//go:embed assets/frame_uniform.wgsl
var GPUFrameUniformSource string

// GPUFrameUniform is the per-frame uniform consumed by the wave shaders.
// Matches the WGSL FrameUniform struct layout exactly (see GPUFrameUniformSource).
// Size: 80 bytes (WGSL uniform aligned).
type GPUFrameUniform struct {
	ViewProj  [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	Time      float32     // offset 64: seconds since the render loop started (f32)
	Amplitude float32     // offset 68: wave height (f32)
	Frequency float32     // offset 72: wave angular speed (f32)
	_pad      float32     // offset 76: padding to 80 bytes
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(g.Amplitude))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(g.Frequency))
	binary.LittleEndian.PutUint32(buf[76:], 0) // _pad
	return buf
}
