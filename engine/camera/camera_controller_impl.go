package camera

import (
	"sync"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; planar methods translate both
// position and target, preserving the orbit relationship.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position common.Vec3
	target   common.Vec3

	// eye, when set by an option, seeds the spherical coordinates after all options are applied
	eye *common.Vec3

	radius    float32
	azimuth   float32 // around +z, from +x towards +y
	elevation float32 // above the xy plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
	panSpeed   float32
}

var _ CameraController = &cameraControllerImpl{}

// defaultEye is the demo's viewpoint: above the grid, looking down the diagonal.
var defaultEye = common.Vec3{-50, -50, 50}

// NewOrbitController creates a new z-up orbit controller. Unless WithRadius, WithAzimuth or
// WithElevation are given, the camera starts at (-50, -50, 50) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	eye := defaultEye
	cc := &cameraControllerImpl{
		mu:  &sync.Mutex{},
		eye: &eye,

		minRadius:    5.0,
		maxRadius:    2000.0,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		orbitSpeed: 0.03,
		zoomSpeed:  5.0,
		panSpeed:   1.0,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.eye != nil {
		cc.setEye(*cc.eye)
		cc.eye = nil
	} else {
		cc.clamp()
		cc.updatePosition()
	}
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position = cc.target.Add(common.Vec3{
		cc.radius * cosElev * cosAzim,
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
	})
}

// setEye derives spherical coordinates from an eye position around the current target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) setEye(eye common.Vec3) {
	dx, dy, dz := eye[0]-cc.target[0], eye[1]-cc.target[1], eye[2]-cc.target[2]
	cc.radius = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if cc.radius > 0 {
		cc.azimuth = math32.Atan2(dy, dx)
		cc.elevation = math32.Asin(dz / cc.radius)
	}
	cc.clamp()
	cc.updatePosition()
}

// clamp keeps radius and elevation within their bounds. Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// horizontalAxes returns the unit forward and right vectors of the camera projected onto the xy plane.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) horizontalAxes() (forward, right common.Vec3) {
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)
	// the camera sits at +azimuth and looks back towards the target
	forward = common.Vec3{-cosAzim, -sinAzim, 0}
	// right = forward × up with up = +z
	right = common.Vec3{forward[1], -forward[0], 0}
	return forward, right
}

// translate moves position and target by offset. Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(offset common.Vec3) {
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetEye(eye common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setEye(eye)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = min(cc.elevation+cc.orbitSpeed, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = max(cc.elevation-cc.orbitSpeed, cc.minElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, right := cc.horizontalAxes()
	s := delta * cc.panSpeed
	cc.translate(right.Mul(common.Vec3{s, s, s}))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	forward, _ := cc.horizontalAxes()
	s := delta * cc.panSpeed
	cc.translate(forward.Mul(common.Vec3{s, s, s}))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
