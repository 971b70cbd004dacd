//go:build js && wasm

package window

import (
	"errors"
	"fmt"
	"log"
	"syscall/js"

	"github.com/richinsley/glplatform/glapi/webgl"
	"github.com/richinsley/glplatform/graphics"
)

type listener struct {
	target js.Value
	typ    string
	fn     js.Func
}

// CanvasWindow is an existing <canvas> element with DOM input listeners
// forwarding to an InputHandler.
type CanvasWindow struct {
	canvas    js.Value
	handler   *InputHandler
	listeners []listener
}

// CreateCanvasWindow looks up the canvas with the given element id and
// starts forwarding its mouse and key events to h.
func CreateCanvasWindow(id string, h *InputHandler) (*CanvasWindow, error) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("window: no element with id %q", id)
	}
	// keydown is only delivered to focusable elements
	canvas.Call("setAttribute", "tabindex", "0")

	w := &CanvasWindow{canvas: canvas, handler: h}
	w.listen(canvas, "mousemove", func(e js.Value) {
		x, y := w.coords(e)
		w.handler.Dispatch(MouseMove{X: x, Y: y})
	})
	w.listen(canvas, "mousedown", func(e js.Value) {
		x, y := w.coords(e)
		canvas.Call("focus")
		w.handler.Dispatch(MouseDown{Button: int8(e.Get("button").Int()), X: x, Y: y})
	})
	w.listen(canvas, "mouseup", func(e js.Value) {
		x, y := w.coords(e)
		w.handler.Dispatch(MouseUp{Button: int8(e.Get("button").Int()), X: x, Y: y})
	})
	w.listen(canvas, "keydown", func(e js.Value) {
		w.handler.Dispatch(KeyDown{Key: e.Get("keyCode").Int()})
	})
	w.listen(canvas, "keyup", func(e js.Value) {
		w.handler.Dispatch(KeyUp{Key: e.Get("keyCode").Int()})
	})
	w.listen(canvas, "contextmenu", func(e js.Value) { e.Call("preventDefault") })

	log.Printf("Canvas window %q created", id)
	return w, nil
}

func (w *CanvasWindow) listen(target js.Value, typ string, f func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			f(args[0])
		}
		return nil
	})
	target.Call("addEventListener", typ, fn)
	w.listeners = append(w.listeners, listener{target: target, typ: typ, fn: fn})
}

// coords maps client coordinates onto the canvas backing store.
func (w *CanvasWindow) coords(e js.Value) (int, int) {
	rect := w.canvas.Call("getBoundingClientRect")
	scaleX, scaleY := 1.0, 1.0
	if rw := rect.Get("width").Float(); rw != 0 {
		scaleX = float64(w.canvas.Get("width").Int()) / rw
	}
	if rh := rect.Get("height").Float(); rh != 0 {
		scaleY = float64(w.canvas.Get("height").Int()) / rh
	}
	x := (e.Get("clientX").Float() - rect.Get("left").Float()) * scaleX
	y := (e.Get("clientY").Float() - rect.Get("top").Float()) * scaleY
	return int(x + 0.5), int(y + 0.5)
}

// Release removes the DOM listeners. The window must not be used after.
func (w *CanvasWindow) Release() {
	for _, l := range w.listeners {
		l.target.Call("removeEventListener", l.typ, l.fn)
		l.fn.Release()
	}
	w.listeners = nil
}

var current *GLContext

// GLContext is the WebGL2 context of a CanvasWindow.
type GLContext struct {
	window *CanvasWindow
	gl     js.Value
	start  float64
	closed bool
	frame  chan struct{}
	raf    js.Func
}

var _ graphics.Context = (*GLContext)(nil)

// GetWindowContext creates the WebGL2 context of w. The context is not
// current until SetCurrentContext is called.
func GetWindowContext(w *CanvasWindow) (*GLContext, error) {
	gl := w.canvas.Call("getContext", "webgl2", map[string]any{
		"alpha":                 false,
		"antialias":             false,
		"premultipliedAlpha":    false,
		"preserveDrawingBuffer": true,
	})
	if gl.IsNull() || gl.IsUndefined() {
		return nil, errors.New("window: WebGL2 is not available")
	}
	c := &GLContext{
		window: w,
		gl:     gl,
		start:  now(),
		frame:  make(chan struct{}, 1),
	}
	c.raf = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case c.frame <- struct{}{}:
		default:
		}
		return nil
	})
	return c, nil
}

// SetCurrentContext binds ctx for subsequent graphics calls.
func SetCurrentContext(ctx *GLContext) {
	current = ctx
}

// Functions returns a driver for the context.
func (c *GLContext) Functions() (*webgl.Functions, error) {
	return webgl.NewFunctions(c.gl)
}

func (c *GLContext) MakeCurrent()      { SetCurrentContext(c) }
func (c *GLContext) IsCurrent() bool   { return current == c && !c.closed }
func (c *GLContext) ShouldClose() bool { return c.closed }

func (c *GLContext) GetFramebufferSize() (int, int) {
	return c.gl.Get("drawingBufferWidth").Int(), c.gl.Get("drawingBufferHeight").Int()
}

// EndFrame yields to the browser until the next animation frame. It must
// not be called from inside a JavaScript callback.
func (c *GLContext) EndFrame() {
	js.Global().Call("requestAnimationFrame", c.raf)
	<-c.frame
}

func (c *GLContext) Time() float64 {
	return (now() - c.start) / 1000
}

// Shutdown releases the context and the window listeners.
func (c *GLContext) Shutdown() {
	if c.closed {
		return
	}
	c.closed = true
	if current == c {
		current = nil
	}
	c.window.Release()
	c.raf.Release()
	log.Println("Canvas context shut down")
}

func now() float64 {
	return js.Global().Get("performance").Call("now").Float()
}
