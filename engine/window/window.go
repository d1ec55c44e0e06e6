package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// Title returns the window title.
	Title() string

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetDragCallback sets the callback for cursor movement while the drag button is held.
	//
	// Parameters:
	//   - callback: function receiving the cursor offset in pixels since the last move
	SetDragCallback(callback func(dx, dy float32))

	// KeyHeld reports whether a key is currently held down. Safe to call from any goroutine.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true while the key is pressed
	KeyHeld(keyCode uint32) bool

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop on the calling (main) thread.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	// size limits applied while resizing; 0 leaves that bound unset
	minWidth, minHeight int
	maxWidth, maxHeight int

	resizable  bool
	closeKey   uint32
	dragButton MouseButton

	// sizeMu guards width and height, which the render goroutine reads during resize.
	sizeMu sync.RWMutex
	width  int
	height int

	input *inputState

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onDrag    func(dx, dy float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Panics if the platform window
// cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies options over the defaults without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:      "Wavegrid",
		minWidth:   320,
		minHeight:  240,
		width:      1280,
		height:     720,
		resizable:  true,
		closeKey:   common.KeyEsc,
		dragButton: MouseButtonMiddle,
		input:      newInputState(),
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = max(w.width, 1)
	w.height = max(w.height, 1)
	return w
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) KeyHeld(keyCode uint32) bool {
	return w.input.isHeld(keyCode)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.sizeMu.RLock()
	defer w.sizeMu.RUnlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.sizeMu.RLock()
	defer w.sizeMu.RUnlock()
	return w.height
}

func (w *engineWindow) setSize(width, height int) {
	w.sizeMu.Lock()
	w.width = width
	w.height = height
	w.sizeMu.Unlock()
}

// handleKey routes a key event. It returns true when the key closes the window.
func (w *engineWindow) handleKey(keyCode uint32, pressed, repeat bool) bool {
	if keyCode == w.closeKey && pressed && !repeat {
		return true
	}
	if pressed {
		w.input.press(keyCode)
		if w.onKeyDown != nil {
			w.onKeyDown(keyCode)
		}
		return false
	}
	w.input.release(keyCode)
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
	return false
}

// handleButton starts or ends a drag when the drag button changes state.
func (w *engineWindow) handleButton(button MouseButton, pressed bool, x, y float64) {
	if button != w.dragButton {
		return
	}
	if pressed {
		w.input.beginDrag(x, y)
		return
	}
	w.input.endDrag()
}

func (w *engineWindow) handleCursor(x, y float64) {
	dx, dy, ok := w.input.drag(x, y)
	if ok && w.onDrag != nil {
		w.onDrag(dx, dy)
	}
}

func (w *engineWindow) handleResize(width, height int) {
	w.setSize(width, height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
