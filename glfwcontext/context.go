// Package glfwcontext provides a graphics.Context backed by a GLFW window.
package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glplatform/graphics"
	"github.com/richinsley/glplatform/window"
)

// Context is a GLFW window with a 4.1 core OpenGL context.
type Context struct {
	window  *glfw.Window
	handler *window.InputHandler
}

var _ graphics.Context = (*Context)(nil)

// New creates a width x height window and forwards its input to handler,
// which may be nil. The context is not made current.
func New(width, height int, title string, visible bool, handler *window.InputHandler) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win, handler: handler}
	win.SetKeyCallback(c.keyCallback)
	win.SetCursorPosCallback(c.cursorPosCallback)
	win.SetMouseButtonCallback(c.mouseButtonCallback)
	return c, nil
}

func (c *Context) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		c.handler.KeyDown(int(key))
	case glfw.Release:
		c.handler.KeyUp(int(key))
	}
}

// cursor positions are reported in framebuffer pixels, origin top-left,
// the same as the canvas window.
func (c *Context) pixelPos(x, y float64) (int, int) {
	fbw, fbh := c.window.GetFramebufferSize()
	ww, wh := c.window.GetSize()
	if ww > 0 && wh > 0 {
		x *= float64(fbw) / float64(ww)
		y *= float64(fbh) / float64(wh)
	}
	return int(x + 0.5), int(y + 0.5)
}

func (c *Context) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	x, y := c.pixelPos(xpos, ypos)
	c.handler.MouseMove(x, y)
}

func (c *Context) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	x, y := c.pixelPos(w.GetCursorPos())
	b := glfwButton(button)
	switch action {
	case glfw.Press:
		c.handler.MouseDown(b, x, y)
	case glfw.Release:
		c.handler.MouseUp(b, x, y)
	}
}

// glfwButton maps GLFW button numbers onto DOM numbering, where the
// middle button is 1 and the right button is 2.
func glfwButton(b glfw.MouseButton) int8 {
	switch b {
	case glfw.MouseButtonLeft:
		return window.ButtonLeft
	case glfw.MouseButtonMiddle:
		return window.ButtonMiddle
	case glfw.MouseButtonRight:
		return window.ButtonRight
	}
	return int8(b)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) IsCurrent() bool {
	return c.window != nil && glfw.GetCurrentContext() == c.window
}

// DetachCurrent makes no context current on the calling thread.
func (c *Context) DetachCurrent() {
	glfw.DetachCurrentContext()
}

// Shutdown destroys the window. Calling it twice is a no-op.
func (c *Context) Shutdown() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	c.window = nil
	log.Println("GLFW window destroyed")
}

func (c *Context) ShouldClose() bool {
	return c.window == nil || c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
