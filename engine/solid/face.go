package solid

import "github.com/Carmen-Shannon/wavegrid/common"

// FaceKey identifies a face by the pair of axes it spans.
type FaceKey string

const (
	FaceXY FaceKey = "xy"
	FaceXZ FaceKey = "xz"
	FaceYZ FaceKey = "yz"
)

// Face is one of the six planar quads of a solid.
type Face struct {
	// Key is the axis pair spanned by the face and selects its color.
	Key FaceKey

	// Direction is the value (-1 or +1) of the fixed axis.
	Direction float32

	// A and B are the indices of the two free axes, Fixed is the index of the held axis.
	A, B, Fixed int
}

// Faces lists the six faces in emission order.
var Faces = [6]Face{
	{Key: FaceXY, Direction: -1, A: 0, B: 1, Fixed: 2},
	{Key: FaceXY, Direction: 1, A: 0, B: 1, Fixed: 2},
	{Key: FaceXZ, Direction: -1, A: 0, B: 2, Fixed: 1},
	{Key: FaceXZ, Direction: 1, A: 0, B: 2, Fixed: 1},
	{Key: FaceYZ, Direction: -1, A: 1, B: 2, Fixed: 0},
	{Key: FaceYZ, Direction: 1, A: 1, B: 2, Fixed: 0},
}

// quadCorners covers a face with two triangles in the (A, B) plane.
var quadCorners = [6][2]float32{
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
	{-1, 1},
	{1, -1},
}

// Corners returns the six unit-cube corners of the face in emission order.
// The order is reversed for the +1 direction so opposite faces wind oppositely.
//
// Returns:
//   - [6]common.Vec3: the corner positions in [-1, 1] cube space
func (f Face) Corners() [6]common.Vec3 {
	var out [6]common.Vec3
	for i, c := range quadCorners {
		idx := i
		if f.Direction > 0 {
			idx = len(quadCorners) - 1 - i
		}
		var v common.Vec3
		v[f.Fixed] = f.Direction
		v[f.A] = c[0]
		v[f.B] = c[1]
		out[idx] = v
	}
	return out
}

// DefaultFaceColors returns a fresh map with the default colors: red for xy, green for xz and blue for yz.
//
// Returns:
//   - map[FaceKey]common.Color: the default face colors
func DefaultFaceColors() map[FaceKey]common.Color {
	return map[FaceKey]common.Color{
		FaceXY: common.ColorRed,
		FaceXZ: common.ColorGreen,
		FaceYZ: common.ColorBlue,
	}
}
