package render

import (
	"image"

	"github.com/richinsley/glplatform/glapi"
)

// Filter selects texture sampling. The zero value is linear.
type Filter int

const (
	Linear Filter = iota
	Nearest
)

func (f Filter) glEnum() int {
	if f == Nearest {
		return glapi.NEAREST
	}
	return glapi.LINEAR
}

func (f Filter) String() string {
	if f == Nearest {
		return "nearest"
	}
	return "linear"
}

// Texture is an RGBA8 2D texture with a fixed size.
type Texture struct {
	d      *Device
	ref    glapi.Texture
	size   image.Point
	filter Filter
}

// CreateTexture allocates a width×height texture with undefined contents.
func (d *Device) CreateTexture(width, height int, filter Filter) (*Texture, error) {
	if err := d.check("create texture"); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, &BoundsError{Size: image.Pt(width, height), Region: image.Rect(0, 0, width, height)}
	}
	f := d.f
	ref := f.CreateTexture()
	f.BindTexture(glapi.TEXTURE_2D, ref)
	f.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MIN_FILTER, filter.glEnum())
	f.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MAG_FILTER, filter.glEnum())
	f.TexImage2D(glapi.TEXTURE_2D, 0, glapi.RGBA8, width, height, glapi.RGBA, glapi.UNSIGNED_BYTE)
	return &Texture{
		d:      d,
		ref:    ref,
		size:   image.Pt(width, height),
		filter: filter,
	}, nil
}

// Size returns the dimensions the texture was created with.
func (t *Texture) Size() image.Point {
	return t.size
}

func (t *Texture) Filter() Filter {
	return t.filter
}

// Destroyed reports whether Destroy has been called.
func (t *Texture) Destroyed() bool {
	return !t.ref.Valid()
}

// SetRegion uploads img with its top-left corner at offset. The whole
// image must fit inside the texture.
func (t *Texture) SetRegion(img *image.RGBA, offset image.Point) error {
	if err := t.d.check("set texture region"); err != nil {
		return err
	}
	if t.Destroyed() {
		return &PreconditionError{Op: "set texture region", Err: ErrDestroyed}
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	// offset+size may overflow, so compare offsets with the space left
	if w > t.size.X || h > t.size.Y || offset.X < 0 || offset.Y < 0 ||
		offset.X > t.size.X-w || offset.Y > t.size.Y-h {
		return &BoundsError{Size: t.size, Region: image.Rectangle{Min: offset, Max: offset.Add(image.Pt(w, h))}}
	}
	if w == 0 || h == 0 {
		return nil
	}
	pix := img.Pix
	if rowSize := w * 4; img.Stride != rowSize {
		pix = make([]byte, rowSize*h)
		for y := 0; y < h; y++ {
			copy(pix[y*rowSize:], img.Pix[y*img.Stride:y*img.Stride+rowSize])
		}
	}
	f := t.d.f
	f.BindTexture(glapi.TEXTURE_2D, t.ref)
	f.TexSubImage2D(glapi.TEXTURE_2D, 0, offset.X, offset.Y, w, h, glapi.RGBA, glapi.UNSIGNED_BYTE, pix[:w*h*4])
	return nil
}

// Destroy releases the GPU texture. Calling it again is a no-op.
func (t *Texture) Destroy() {
	if t.Destroyed() {
		return
	}
	t.d.f.DeleteTexture(t.ref)
	t.ref = glapi.Texture{}
}
