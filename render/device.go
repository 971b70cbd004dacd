// Package render is a thin immediate-mode wrapper over a glapi.Functions
// driver: textures, shader programs with deferred uniforms, vertex buffers
// and a single triangle-list draw call.
//
// A Device and everything created from it must only be used on the thread
// that holds the device's graphics context. Only the presence of a current
// context is checked; calls from other threads are undefined.
package render

import (
	"fmt"
	"image"
	"log"

	"github.com/richinsley/glplatform/glapi"
	"github.com/richinsley/glplatform/graphics"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Black is the default clear color.
var Black = Color{0, 0, 0, 1}

// Device creates and draws GPU resources through one driver and context.
type Device struct {
	f        glapi.Functions
	ctx      graphics.Context
	maxUnits int
}

// NewDevice binds a driver to the context it renders into. ctx must be
// current.
func NewDevice(f glapi.Functions, ctx graphics.Context) (*Device, error) {
	if ctx == nil || !ctx.IsCurrent() {
		return nil, &PreconditionError{Op: "new device", Err: ErrNoContext}
	}
	d := &Device{
		f:        f,
		ctx:      ctx,
		maxUnits: f.GetInteger(glapi.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
	}
	log.Printf("Graphics device ready with %d texture units", d.maxUnits)
	return d, nil
}

// Functions returns the underlying driver.
func (d *Device) Functions() glapi.Functions {
	return d.f
}

// MaxTextureUnits returns the number of texture units a single draw can use.
func (d *Device) MaxTextureUnits() int {
	return d.maxUnits
}

func (d *Device) check(op string) error {
	if !d.ctx.IsCurrent() {
		return &PreconditionError{Op: op, Err: ErrNoContext}
	}
	return nil
}

// ScreenSize returns the width and height of the current viewport.
func (d *Device) ScreenSize() (int, int, error) {
	if err := d.check("screen size"); err != nil {
		return 0, 0, err
	}
	rect := d.f.GetInteger4(glapi.VIEWPORT)
	return rect[2], rect[3], nil
}

// FitViewport sets the viewport to the context's current framebuffer size
// and returns that size. Windows that resize need this once per frame.
func (d *Device) FitViewport() (int, int, error) {
	if err := d.check("fit viewport"); err != nil {
		return 0, 0, err
	}
	w, h := d.ctx.GetFramebufferSize()
	d.f.Viewport(0, 0, w, h)
	return w, h, nil
}

// SetViewport sets the viewport rectangle, origin at the bottom left.
func (d *Device) SetViewport(x, y, width, height int) error {
	if err := d.check("set viewport"); err != nil {
		return err
	}
	d.f.Viewport(x, y, width, height)
	return nil
}

// Clear fills the color buffer with c, or opaque black when c is nil.
// Depth and stencil are left alone.
func (d *Device) Clear(c *Color) error {
	if err := d.check("clear"); err != nil {
		return err
	}
	col := Black
	if c != nil {
		col = *c
	}
	d.f.ClearColor(col.R, col.G, col.B, col.A)
	d.f.Clear(glapi.COLOR_BUFFER_BIT)
	return nil
}

// ReadPixels reads an RGBA8 rectangle of the bound framebuffer. Rows are
// returned bottom row first.
func (d *Device) ReadPixels(r image.Rectangle) ([]byte, error) {
	if err := d.check("read pixels"); err != nil {
		return nil, err
	}
	if r.Dx() < 0 || r.Dy() < 0 {
		return nil, fmt.Errorf("read pixels: invalid rectangle %v", r)
	}
	data := make([]byte, r.Dx()*r.Dy()*4)
	if len(data) == 0 {
		return data, nil
	}
	d.f.PixelStorei(glapi.PACK_ALIGNMENT, 4)
	d.f.ReadPixels(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), glapi.RGBA, glapi.UNSIGNED_BYTE, data)
	return data, nil
}

// ReadImage reads a rectangle of the bound framebuffer into a top-down
// image.
func (d *Device) ReadImage(r image.Rectangle) (*image.RGBA, error) {
	data, err := d.ReadPixels(r)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	rowSize := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		src := data[(r.Dy()-1-y)*rowSize:]
		copy(img.Pix[y*img.Stride:], src[:rowSize])
	}
	return img, nil
}
