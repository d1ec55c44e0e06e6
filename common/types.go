// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/chewxy/math32"

// Vec3 is a three component float32 vector used for positions, sizes and directions.
type Vec3 [3]float32

// Color is an RGBA color with float32 channels in the range [0, 1].
type Color [4]float32

var (
	// ColorRed is opaque red.
	ColorRed = Color{1, 0, 0, 1}

	// ColorGreen is opaque green.
	ColorGreen = Color{0, 1, 0, 1}

	// ColorBlue is opaque blue.
	ColorBlue = Color{0, 0, 1, 1}

	// ColorWhite is opaque white, the neutral tint.
	ColorWhite = Color{1, 1, 1, 1}
)

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
