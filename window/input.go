// Package window holds the input plumbing shared by the native and web
// window layers, and the browser canvas bootstrap for js/wasm builds.
package window

// InputHandler holds up to five optional callbacks. A nil callback means
// the corresponding event class is dropped.
type InputHandler struct {
	mouseMove func(x, y int)
	mouseDown func(button int8, x, y int)
	mouseUp   func(button int8, x, y int)
	keyDown   func(key int)
	keyUp     func(key int)
}

func (h *InputHandler) SetMouseMove(fn func(x, y int))              { h.mouseMove = fn }
func (h *InputHandler) SetMouseDown(fn func(button int8, x, y int)) { h.mouseDown = fn }
func (h *InputHandler) SetMouseUp(fn func(button int8, x, y int))   { h.mouseUp = fn }
func (h *InputHandler) SetKeyDown(fn func(key int))                 { h.keyDown = fn }
func (h *InputHandler) SetKeyUp(fn func(key int))                   { h.keyUp = fn }

func (h *InputHandler) MouseMove(x, y int) {
	if h != nil && h.mouseMove != nil {
		h.mouseMove(x, y)
	}
}

func (h *InputHandler) MouseDown(button int8, x, y int) {
	if h != nil && h.mouseDown != nil {
		h.mouseDown(button, x, y)
	}
}

func (h *InputHandler) MouseUp(button int8, x, y int) {
	if h != nil && h.mouseUp != nil {
		h.mouseUp(button, x, y)
	}
}

func (h *InputHandler) KeyDown(key int) {
	if h != nil && h.keyDown != nil {
		h.keyDown(key)
	}
}

func (h *InputHandler) KeyUp(key int) {
	if h != nil && h.keyUp != nil {
		h.keyUp(key)
	}
}

// Dispatch routes e to the matching callback.
func (h *InputHandler) Dispatch(e Event) {
	switch e := e.(type) {
	case MouseMove:
		h.MouseMove(e.X, e.Y)
	case MouseDown:
		h.MouseDown(e.Button, e.X, e.Y)
	case MouseUp:
		h.MouseUp(e.Button, e.X, e.Y)
	case KeyDown:
		h.KeyDown(e.Key)
	case KeyUp:
		h.KeyUp(e.Key)
	}
}
