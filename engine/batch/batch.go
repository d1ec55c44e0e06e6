// package batch packs many solids into the single interleaved vertex buffer the renderer uploads once,
// and builds the demo grid of solids on a worker pool.
package batch

import (
	"fmt"

	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

// Pack concatenates the vertex buffers of the given solids into one contiguous buffer.
// Solid i occupies bytes [i × stride, (i+1) × stride) where stride is the per-solid buffer size of
// the shared layout. The returned buffer never aliases any solid's internal storage.
//
// Zero solids produce a zero-length, non-nil buffer. Solids with differing layouts cannot share
// one vertex stride and cause a panic.
//
// Parameters:
//   - solids: the solids to pack, in draw order
//
// Returns:
//   - []byte: the packed vertex buffer
func Pack(solids []solid.Solid) []byte {
	if len(solids) == 0 {
		return []byte{}
	}

	layout := solids[0].Layout()
	stride := layout.BytesPerSolid()
	buf := make([]byte, stride*len(solids))
	for i, s := range solids {
		if s.Layout() != layout {
			panic(fmt.Sprintf("batch: solid %d has layout %s, expected %s", i, s.Layout(), layout))
		}
		s.CopyTo(buf[i*stride : (i+1)*stride])
	}
	return buf
}

// VertexCount returns the number of vertices contained in a packed buffer of n solids.
//
// Parameters:
//   - n: the number of packed solids
//
// Returns:
//   - uint32: n × VerticesPerSolid
func VertexCount(n int) uint32 {
	return uint32(n * solid.VerticesPerSolid)
}
