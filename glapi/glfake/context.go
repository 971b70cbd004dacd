package glfake

import "github.com/richinsley/glplatform/graphics"

// Context is a graphics.Context backed by nothing. It starts current.
type Context struct {
	Current       bool
	Width, Height int
	Frames        int
	Closed        bool
	clock         float64
}

var _ graphics.Context = (*Context)(nil)

func NewContext(width, height int) *Context {
	return &Context{Current: true, Width: width, Height: height}
}

func (c *Context) MakeCurrent()                   { c.Current = true }
func (c *Context) IsCurrent() bool                { return c.Current }
func (c *Context) Shutdown()                      { c.Closed = true; c.Current = false }
func (c *Context) ShouldClose() bool              { return c.Closed }
func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }

// EndFrame advances the clock by one 60 Hz frame.
func (c *Context) EndFrame() {
	c.Frames++
	c.clock += 1.0 / 60
}

func (c *Context) Time() float64 { return c.clock }
