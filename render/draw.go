package render

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/richinsley/glplatform/glapi"
)

// RenderVertices uploads vertices into vb and draws them as a triangle
// list with p.
//
// Blending is set to source-alpha / one-minus-source-alpha on every call
// and is not restored. The whole slice is re-uploaded each time. Uniforms
// are applied in list order; each Sampler takes the next texture unit
// starting at 0. V must be a struct value type whose size equals Stride.
//
// Everything that can fail is checked before the driver is touched.
func RenderVertices[V Vertex](vb *VertexBuffer, p *Program, vertices []V) error {
	const op = "render vertices"
	d := p.d
	if err := d.check(op); err != nil {
		return err
	}
	if vb.Destroyed() {
		return &PreconditionError{Op: op, Err: fmt.Errorf("%w: vertex buffer", ErrDestroyed)}
	}
	if p.Destroyed() {
		return &PreconditionError{Op: op, Err: fmt.Errorf("%w: program", ErrDestroyed)}
	}

	if rt := reflect.TypeFor[V](); rt.Kind() != reflect.Struct {
		return &PreconditionError{Op: op, Err: fmt.Errorf("%w: vertex type %v is not a struct", ErrLayout, rt)}
	}
	var zero V
	stride := zero.Stride()
	if size := int(unsafe.Sizeof(zero)); size != stride {
		return &PreconditionError{Op: op, Err: fmt.Errorf("%w: stride is %d, vertex size is %d", ErrLayout, stride, size)}
	}
	attrs := zero.Attributes()
	offsets, err := Offsets(zero)
	if err != nil {
		return &PreconditionError{Op: op, Err: err}
	}

	units := 0
	for _, u := range p.uniforms {
		s, ok := u.Value.(Sampler)
		if !ok {
			continue
		}
		if s.Texture == nil || s.Texture.Destroyed() {
			return &PreconditionError{Op: op, Err: fmt.Errorf("%w: texture for uniform %q", ErrDestroyed, u.Name)}
		}
		units++
	}
	if units > d.maxUnits {
		return &ResourceLimitError{Resource: "texture units", Requested: units, Limit: d.maxUnits}
	}

	f := d.f
	f.BlendFunc(glapi.SRC_ALPHA, glapi.ONE_MINUS_SRC_ALPHA)
	f.Enable(glapi.BLEND)

	f.BindVertexArray(vb.vao)
	f.BindBuffer(glapi.ARRAY_BUFFER, vb.vbo)
	f.BufferData(glapi.ARRAY_BUFFER, vertexBytes(vertices, stride), glapi.STATIC_DRAW)

	f.UseProgram(p.ref)

	unit := 0
	for _, u := range p.uniforms {
		loc := p.uniformLocation(u.Name)
		switch v := u.Value.(type) {
		case Vec2:
			f.Uniform2f(loc, v.X, v.Y)
		case Sampler:
			f.ActiveTexture(glapi.Enum(glapi.TEXTURE0 + unit))
			f.BindTexture(glapi.TEXTURE_2D, v.Texture.ref)
			f.Uniform1i(loc, unit)
			unit++
		}
	}

	for i, a := range attrs {
		loc := p.attribLocation(a.Name)
		if !loc.Valid() {
			continue
		}
		ty := glapi.Enum(glapi.FLOAT)
		if a.Type == Unsigned {
			ty = glapi.UNSIGNED_INT
		}
		f.EnableVertexAttribArray(loc)
		f.VertexAttribPointer(loc, a.Count, ty, false, stride, offsets[i])
	}

	f.DrawArrays(glapi.TRIANGLES, 0, len(vertices))
	return nil
}

func vertexBytes[V any](vertices []V, stride int) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*stride)
}
