package window

import "sync"

// MouseButton identifies a mouse button. Values match GLFW's button numbering.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// inputState tracks held keys and the active mouse drag. Events are written on the window
// thread and read from the engine's tick goroutine.
type inputState struct {
	mu sync.Mutex

	held map[uint32]struct{}

	dragging     bool
	lastX, lastY float64
}

func newInputState() *inputState {
	return &inputState{held: make(map[uint32]struct{})}
}

func (s *inputState) press(key uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[key] = struct{}{}
}

func (s *inputState) release(key uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, key)
}

func (s *inputState) isHeld(key uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.held[key]
	return ok
}

func (s *inputState) beginDrag(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
	s.lastX, s.lastY = x, y
}

func (s *inputState) endDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
}

// drag records a cursor move and returns the offset from the previous position.
// ok is false when no drag is in progress.
func (s *inputState) drag(x, y float64) (dx, dy float32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return 0, 0, false
	}
	dx, dy = float32(x-s.lastX), float32(y-s.lastY)
	s.lastX, s.lastY = x, y
	return dx, dy, true
}

// reset forgets every held key and ends any drag. Called when the window loses focus, since
// release events for keys let go elsewhere never arrive.
func (s *inputState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
	s.dragging = false
}
