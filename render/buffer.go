package render

import "github.com/richinsley/glplatform/glapi"

// VertexBuffer pairs a vertex array object with the buffer object that
// holds its vertex data.
type VertexBuffer struct {
	d   *Device
	vao glapi.VertexArray
	vbo glapi.Buffer
}

// CreateVertexBuffer allocates an empty vertex array and buffer pair.
func (d *Device) CreateVertexBuffer() (*VertexBuffer, error) {
	if err := d.check("create vertex buffer"); err != nil {
		return nil, err
	}
	return &VertexBuffer{
		d:   d,
		vao: d.f.CreateVertexArray(),
		vbo: d.f.CreateBuffer(),
	}, nil
}

// Destroyed reports whether Destroy has been called.
func (b *VertexBuffer) Destroyed() bool {
	return !b.vao.Valid()
}

// Destroy releases both objects. Calling it again is a no-op.
func (b *VertexBuffer) Destroy() {
	if b.Destroyed() {
		return
	}
	b.d.f.DeleteBuffer(b.vbo)
	b.d.f.DeleteVertexArray(b.vao)
	b.vao = glapi.VertexArray{}
	b.vbo = glapi.Buffer{}
}
