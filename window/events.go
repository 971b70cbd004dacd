package window

// Event is one of MouseMove, MouseDown, MouseUp, KeyDown or KeyUp.
type Event interface {
	isEvent()
}

// Mouse buttons, numbered as the DOM numbers them.
const (
	ButtonLeft   int8 = 0
	ButtonMiddle int8 = 1
	ButtonRight  int8 = 2
)

type MouseMove struct {
	X, Y int
}

type MouseDown struct {
	Button int8
	X, Y   int
}

type MouseUp struct {
	Button int8
	X, Y   int
}

// KeyDown carries a DOM keyCode on the web and a GLFW key on native.
type KeyDown struct {
	Key int
}

type KeyUp struct {
	Key int
}

func (MouseMove) isEvent() {}
func (MouseDown) isEvent() {}
func (MouseUp) isEvent()   {}
func (KeyDown) isEvent()   {}
func (KeyUp) isEvent()     {}
