package main

import (
	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine"
	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/window"
)

// dragSensitivity is radians of orbit per pixel of middle-mouse drag.
const dragSensitivity = 0.005

// bindInput wires scroll and drag to the orbit controller and polls held keys every tick.
func bindInput(win window.Window, eng engine.Engine, ctrl camera.CameraController) {
	win.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})
	win.SetDragCallback(func(dx, dy float32) {
		orbitDrag(ctrl, dx, dy)
	})
	eng.SetTickCallback(func(_ float32) {
		applyHeldKeys(win.KeyHeld, ctrl)
	})
}

// applyHeldKeys orbits with the arrow keys and pans with WASD.
func applyHeldKeys(held func(keyCode uint32) bool, ctrl camera.CameraController) {
	if held(common.KeyLeft) {
		ctrl.OrbitLeft()
	}
	if held(common.KeyRight) {
		ctrl.OrbitRight()
	}
	if held(common.KeyUp) {
		ctrl.OrbitUp()
	}
	if held(common.KeyDown) {
		ctrl.OrbitDown()
	}
	if held(common.KeyW) {
		ctrl.PanForward(1)
	}
	if held(common.KeyS) {
		ctrl.PanForward(-1)
	}
	if held(common.KeyA) {
		ctrl.PanRight(-1)
	}
	if held(common.KeyD) {
		ctrl.PanRight(1)
	}
}

func orbitDrag(ctrl camera.CameraController, dx, dy float32) {
	ctrl.SetAzimuth(ctrl.Azimuth() - dx*dragSensitivity)
	ctrl.SetElevation(ctrl.Elevation() + dy*dragSensitivity)
}
