package camera

import "github.com/Carmen-Shannon/wavegrid/common"

// CameraController owns the camera's positional state (position, target). The camera reads from the
// controller and computes its matrices. Orbit and planar controls work on the same instance.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target common.Vec3)

	// SetEye places the camera at eye, deriving radius, azimuth and elevation around the current target.
	// Radius and elevation are clamped to their bounds.
	//
	// Parameters:
	//   - eye: world-space camera position
	SetEye(eye common.Vec3)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController provides orbit controls using spherical coordinates (radius, azimuth, elevation)
// around the target, with z as the vertical axis.
type orbitCameraController interface {
	// OrbitLeft rotates the camera clockwise around the target (seen from above) by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera counter-clockwise around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	SetRadius(radius float32)

	// Azimuth returns the current angle around the z axis, measured from +x towards +y.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	SetAzimuth(azimuth float32)

	// Elevation returns the current angle above the xy plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	SetElevation(elevation float32)

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	OrbitSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController translates position and target together along the camera's local axes,
// preserving the orbit relationship.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanForward translates the camera along the horizontal projection of its view direction.
	// Positive delta moves towards the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32
}
