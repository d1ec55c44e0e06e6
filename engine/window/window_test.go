package window

import (
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "Wavegrid", w.Title())
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.True(t, w.resizable)
	assert.Equal(t, uint32(common.KeyEsc), w.closeKey)
	assert.Equal(t, MouseButtonMiddle, w.dragButton)
	assert.False(t, w.IsRunning(), "no platform window yet")
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestNewEngineWindowOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("waves"),
		WithSize(800, 0),
		WithSizeLimits(100, 100, 1920, 1080),
		WithResizable(false),
		WithCloseKey(common.KeyP),
		WithDragButton(MouseButtonLeft),
	)
	assert.Equal(t, "waves", w.Title())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 1, w.Height(), "sizes are clamped to at least one pixel")
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 100, w.minHeight)
	assert.False(t, w.resizable)
	assert.Equal(t, uint32(common.KeyP), w.closeKey)
	assert.Equal(t, MouseButtonLeft, w.dragButton)

	assert.Equal(t, "waves", newEngineWindow(WithTitle("waves"), WithTitle("")).Title())
}

func TestHandleKey(t *testing.T) {
	w := newEngineWindow()
	var down, up []uint32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })

	assert.False(t, w.handleKey(common.KeyLeft, true, false))
	assert.True(t, w.KeyHeld(common.KeyLeft))
	assert.False(t, w.handleKey(common.KeyLeft, true, true))
	assert.True(t, w.KeyHeld(common.KeyLeft))
	assert.False(t, w.handleKey(common.KeyLeft, false, false))
	assert.False(t, w.KeyHeld(common.KeyLeft))

	assert.Equal(t, []uint32{common.KeyLeft, common.KeyLeft}, down)
	assert.Equal(t, []uint32{common.KeyLeft}, up)

	assert.True(t, w.handleKey(common.KeyEsc, true, false), "escape closes")
	assert.False(t, w.KeyHeld(common.KeyEsc))
}

func TestDrag(t *testing.T) {
	w := newEngineWindow()
	var moves [][2]float32
	w.SetDragCallback(func(dx, dy float32) { moves = append(moves, [2]float32{dx, dy}) })

	w.handleCursor(10, 10)
	assert.Empty(t, moves, "no drag without the button")

	w.handleButton(MouseButtonLeft, true, 10, 10)
	w.handleCursor(20, 20)
	assert.Empty(t, moves, "left button is not the drag button")

	w.handleButton(MouseButtonMiddle, true, 20, 20)
	w.handleCursor(25, 18)
	w.handleCursor(30, 18)
	require.Len(t, moves, 2)
	assert.Equal(t, [2]float32{5, -2}, moves[0])
	assert.Equal(t, [2]float32{5, 0}, moves[1])

	w.handleButton(MouseButtonMiddle, false, 30, 18)
	w.handleCursor(40, 40)
	assert.Len(t, moves, 2)
}

func TestFocusLossReleasesInput(t *testing.T) {
	s := newInputState()
	s.press(common.KeyUp)
	s.beginDrag(0, 0)
	s.reset()
	assert.False(t, s.isHeld(common.KeyUp))
	_, _, ok := s.drag(1, 1)
	assert.False(t, ok)
}

func TestHandleResize(t *testing.T) {
	w := newEngineWindow()
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })
	w.handleResize(640, 480)
	assert.Equal(t, [2]int{640, 480}, got)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}
