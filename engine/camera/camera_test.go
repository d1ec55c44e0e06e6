package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-3

func assertVecInDelta(t *testing.T, want, got common.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v vs %v", i, want, got)
	}
}

func TestDefaultControllerEye(t *testing.T) {
	cc := NewOrbitController()

	assertVecInDelta(t, common.Vec3{-50, -50, 50}, cc.Position())
	assert.Equal(t, common.Vec3{}, cc.Target())
	assert.InDelta(t, math32.Sqrt(3*50*50), cc.Radius(), eps)
	assert.InDelta(t, -3*math32.Pi/4, cc.Azimuth(), eps)
}

func TestControllerEyeAroundTarget(t *testing.T) {
	cc := NewOrbitController(WithTarget(common.Vec3{10, 0, 0}), WithEye(common.Vec3{10, 20, 0}))

	assert.InDelta(t, 20, cc.Radius(), eps)
	assert.InDelta(t, math32.Pi/2, cc.Azimuth(), eps)
	assert.InDelta(t, 0, cc.Elevation(), eps)
	assertVecInDelta(t, common.Vec3{10, 20, 0}, cc.Position())
}

func TestControllerSpherical(t *testing.T) {
	cc := NewOrbitController(WithRadius(10), WithAzimuth(0), WithElevation(0))
	assertVecInDelta(t, common.Vec3{10, 0, 0}, cc.Position())

	cc.SetAzimuth(math32.Pi / 2)
	assertVecInDelta(t, common.Vec3{0, 10, 0}, cc.Position())
}

func TestControllerClamps(t *testing.T) {
	cc := NewOrbitController(WithRadiusBounds(5, 50), WithElevationBounds(0, 1), WithOrbitSpeed(0.75))

	cc.SetRadius(500)
	assert.Equal(t, float32(50), cc.Radius())
	cc.Zoom(100)
	assert.Equal(t, float32(5), cc.Radius())

	cc.SetElevation(0.5)
	cc.OrbitUp()
	assert.Equal(t, float32(1), cc.Elevation())
	cc.OrbitDown()
	cc.OrbitDown()
	assert.Equal(t, float32(0), cc.Elevation())
}

func TestControllerOrbitKeepsRadius(t *testing.T) {
	cc := NewOrbitController()
	r := cc.Radius()
	before := cc.Azimuth()

	cc.OrbitRight()
	assert.InDelta(t, before+cc.OrbitSpeed(), cc.Azimuth(), 1e-6)
	cc.OrbitLeft()
	cc.OrbitLeft()
	assert.InDelta(t, before-cc.OrbitSpeed(), cc.Azimuth(), 1e-6)

	p := cc.Position()
	assert.InDelta(t, r, math32.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]), eps)
}

func TestControllerPan(t *testing.T) {
	cc := NewOrbitController(WithRadius(10), WithAzimuth(0), WithElevation(0.5), WithPanSpeed(2))
	start := cc.Position()

	// camera on +x looking towards -x: forward is -x and right is +y
	cc.PanForward(1)
	assertVecInDelta(t, common.Vec3{-2, 0, 0}, cc.Target())
	assertVecInDelta(t, start.Add(common.Vec3{-2, 0, 0}), cc.Position())

	cc.PanRight(1)
	assertVecInDelta(t, common.Vec3{-2, 2, 0}, cc.Target())
	assert.InDelta(t, 10, cc.Radius(), eps)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, common.Vec3{0, 0, 1}, c.Up())
	assert.InDelta(t, common.Radians(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	require.NotNil(t, c.Controller())
	require.NotNil(t, c.BindGroupProvider())
	assert.Contains(t, c.BindGroupProvider().Label(), "camera_")
}

func TestCameraTargetAtScreenCentre(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	vp := c.ViewProjectionMatrix()

	clip := common.TransformPoint(vp[:], common.Vec3{})
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], eps)
	assert.InDelta(t, 0, clip[1]/clip[3], eps)
	depth := clip[2] / clip[3]
	assert.True(t, depth > 0 && depth < 1, "depth %v outside (0, 1)", depth)
}

func TestCameraUpIsScreenUp(t *testing.T) {
	c := NewCamera()
	vp := c.ViewProjectionMatrix()

	below := common.TransformPoint(vp[:], common.Vec3{0, 0, -5})
	above := common.TransformPoint(vp[:], common.Vec3{0, 0, 5})
	assert.Greater(t, above[1]/above[3], below[1]/below[3])
}

func TestCameraUpdateFollowsController(t *testing.T) {
	c := NewCamera()
	before := c.ViewMatrix()

	c.Controller().OrbitRight()
	assert.Equal(t, before, c.ViewMatrix(), "matrices change only on Update")

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	p := c.ProjectionMatrix()
	assert.InDelta(t, p[5]/2, p[0], 1e-5)
}

func TestFrameUniform(t *testing.T) {
	c := NewCamera()
	u := c.FrameUniform(1.5, 2, 3)

	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, u.ViewProj[0], read(0))
	assert.Equal(t, u.ViewProj[15], read(60))
	assert.Equal(t, float32(1.5), read(64))
	assert.Equal(t, float32(2), read(68))
	assert.Equal(t, float32(3), read(72))
	assert.Equal(t, float32(0), read(76))
}

func TestFrameUniformSourceEmbedded(t *testing.T) {
	assert.Contains(t, GPUFrameUniformSource, "struct FrameUniform")
	assert.Contains(t, GPUFrameUniformSource, "view_proj: mat4x4<f32>")
}
