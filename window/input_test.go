package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnregisteredEventIsDropped(t *testing.T) {
	var h InputHandler
	var keys []int
	h.SetKeyDown(func(key int) { keys = append(keys, key) })

	h.Dispatch(MouseMove{X: 3, Y: 4})
	h.Dispatch(MouseDown{Button: ButtonLeft, X: 1, Y: 1})
	h.Dispatch(MouseUp{Button: ButtonLeft, X: 1, Y: 1})
	h.Dispatch(KeyUp{Key: 65})
	assert.Empty(t, keys)

	h.Dispatch(KeyDown{Key: 65})
	assert.Equal(t, []int{65}, keys)
}

func TestDispatchEveryEventClass(t *testing.T) {
	var h InputHandler
	var got []Event
	h.SetMouseMove(func(x, y int) { got = append(got, MouseMove{x, y}) })
	h.SetMouseDown(func(b int8, x, y int) { got = append(got, MouseDown{b, x, y}) })
	h.SetMouseUp(func(b int8, x, y int) { got = append(got, MouseUp{b, x, y}) })
	h.SetKeyDown(func(k int) { got = append(got, KeyDown{k}) })
	h.SetKeyUp(func(k int) { got = append(got, KeyUp{k}) })

	events := []Event{
		MouseMove{X: 10, Y: 20},
		MouseDown{Button: ButtonRight, X: 10, Y: 20},
		MouseUp{Button: ButtonRight, X: 11, Y: 21},
		KeyDown{Key: 32},
		KeyUp{Key: 32},
	}
	for _, e := range events {
		h.Dispatch(e)
	}
	assert.Equal(t, events, got)
}

func TestDirectCallsMatchDispatch(t *testing.T) {
	var h InputHandler
	calls := 0
	h.SetMouseUp(func(b int8, x, y int) {
		calls++
		assert.Equal(t, ButtonMiddle, b)
		assert.Equal(t, 5, x)
		assert.Equal(t, 6, y)
	})
	h.MouseUp(ButtonMiddle, 5, 6)
	h.MouseDown(ButtonMiddle, 5, 6)
	assert.Equal(t, 1, calls)
}

func TestNilHandlerIsSafe(t *testing.T) {
	var h *InputHandler
	assert.NotPanics(t, func() {
		h.Dispatch(KeyDown{Key: 1})
		h.MouseMove(0, 0)
	})
}

func TestReentrantCallback(t *testing.T) {
	var h InputHandler
	var order []string
	h.SetKeyUp(func(int) { order = append(order, "up") })
	h.SetKeyDown(func(k int) {
		order = append(order, "down")
		h.Dispatch(KeyUp{Key: k})
	})
	h.Dispatch(KeyDown{Key: 9})
	assert.Equal(t, []string{"down", "up"}, order)
}
