package graphics

// Context defines the interface for a window or offscreen surface that owns
// an OpenGL context.
type Context interface {
	MakeCurrent()
	// IsCurrent reports whether this context is bound on the calling thread.
	IsCurrent() bool
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
