package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)
	for i := range 16 {
		if i%5 == 0 {
			assert.Equal(t, float32(1), m[i])
		} else {
			assert.Equal(t, float32(0), m[i])
		}
	}
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	out := make([]float32, 16)

	Mul4(out, id, a)
	assert.Equal(t, a, out)

	Mul4(out, a, id)
	assert.Equal(t, a, out)
}

func TestMul4AliasedOutput(t *testing.T) {
	a := make([]float32, 16)
	Identity(a)
	a[12], a[13], a[14] = 1, 2, 3 // translation
	b := make([]float32, 16)
	copy(b, a)

	Mul4(a, a, b)

	assert.Equal(t, float32(2), a[12])
	assert.Equal(t, float32(4), a[13])
	assert.Equal(t, float32(6), a[14])
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, math32.Pi, Radians(180), eps)
	assert.InDelta(t, math32.Pi/4, Radians(45), eps)
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	view := make([]float32, 16)
	eye := Vec3{-50, -50, 50}
	LookAt(view, eye, Vec3{}, Vec3{0, 0, 1})

	p := TransformPoint(view, Vec3{})
	dist := math32.Sqrt(50*50*3)
	assert.InDelta(t, 0, p[0], 1e-3)
	assert.InDelta(t, 0, p[1], 1e-3)
	assert.InDelta(t, -dist, p[2], 1e-3)
	assert.InDelta(t, 1, p[3], eps)

	e := TransformPoint(view, eye)
	assert.InDelta(t, 0, e[0], 1e-3)
	assert.InDelta(t, 0, e[1], 1e-3)
	assert.InDelta(t, 0, e[2], 1e-3)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	near, far := float32(0.1), float32(1000)
	Perspective(proj, Radians(45), 16.0/9.0, near, far)

	n := TransformPoint(proj, Vec3{0, 0, -near})
	assert.InDelta(t, 0, n[2]/n[3], eps)

	f := TransformPoint(proj, Vec3{0, 0, -far})
	assert.InDelta(t, 1, f[2]/f[3], 1e-4)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, 0, Clamp(-2, 0, 5))
	assert.Equal(t, float32(2.5), Clamp(float32(2.5), 0, 5))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestVec3Ops(t *testing.T) {
	v := Vec3{1, 2, 3}
	assert.Equal(t, Vec3{2, 4, 6}, v.Add(v))
	assert.Equal(t, Vec3{0, 1, 2}, v.Sub(Vec3{1, 1, 1}))
	assert.Equal(t, float32(5), Vec3{3, 4, 0}.Length())
	assert.Equal(t, Vec3{1, 4, 9}, v.Mul(v))
}
