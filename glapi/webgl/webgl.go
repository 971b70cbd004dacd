//go:build js && wasm

// Package webgl implements glapi.Functions on a WebGL2 rendering context.
//
// WebGL hands out JavaScript objects instead of integer names, so the
// implementation keeps a table from glapi handles to js.Value.
package webgl

import (
	"errors"
	"syscall/js"

	"github.com/richinsley/glplatform/glapi"
)

type Functions struct {
	Ctx js.Value

	uint8Array js.Value

	objects  map[uint32]js.Value
	nextName uint32
	uniforms *locationTable[js.Value]
}

var _ glapi.Functions = (*Functions)(nil)

// NewFunctions wraps ctx, which must be a WebGL2RenderingContext.
func NewFunctions(ctx js.Value) (*Functions, error) {
	webgl2Class := js.Global().Get("WebGL2RenderingContext")
	if webgl2Class.IsUndefined() || !ctx.InstanceOf(webgl2Class) {
		return nil, errors.New("webgl: a WebGL2 context is required")
	}
	return &Functions{
		Ctx:        ctx,
		uint8Array: js.Global().Get("Uint8Array"),
		objects:    make(map[uint32]js.Value),
		uniforms:   newLocationTable[js.Value](),
	}, nil
}

func (f *Functions) put(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	f.nextName++
	f.objects[f.nextName] = v
	return f.nextName
}

func (f *Functions) get(name uint32) js.Value {
	if v, ok := f.objects[name]; ok {
		return v
	}
	return js.Null()
}

func (f *Functions) drop(name uint32) js.Value {
	v := f.get(name)
	delete(f.objects, name)
	return v
}

func (f *Functions) byteArrayOf(data []byte) js.Value {
	arr := f.uint8Array.New(len(data))
	if len(data) > 0 {
		js.CopyBytesToJS(arr, data)
	}
	return arr
}

func (f *Functions) ActiveTexture(unit glapi.Enum) {
	f.Ctx.Call("activeTexture", int(unit))
}
func (f *Functions) AttachShader(p glapi.Program, s glapi.Shader) {
	f.Ctx.Call("attachShader", f.get(p.V), f.get(s.V))
}
func (f *Functions) BindBuffer(target glapi.Enum, b glapi.Buffer) {
	f.Ctx.Call("bindBuffer", int(target), f.get(b.V))
}
func (f *Functions) BindTexture(target glapi.Enum, t glapi.Texture) {
	f.Ctx.Call("bindTexture", int(target), f.get(t.V))
}
func (f *Functions) BindVertexArray(a glapi.VertexArray) {
	f.Ctx.Call("bindVertexArray", f.get(a.V))
}
func (f *Functions) BlendFunc(sfactor, dfactor glapi.Enum) {
	f.Ctx.Call("blendFunc", int(sfactor), int(dfactor))
}
func (f *Functions) BufferData(target glapi.Enum, data []byte, usage glapi.Enum) {
	f.Ctx.Call("bufferData", int(target), f.byteArrayOf(data), int(usage))
}
func (f *Functions) Clear(mask glapi.Enum) {
	f.Ctx.Call("clear", int(mask))
}
func (f *Functions) ClearColor(r, g, b, a float32) {
	f.Ctx.Call("clearColor", r, g, b, a)
}
func (f *Functions) CompileShader(s glapi.Shader) {
	f.Ctx.Call("compileShader", f.get(s.V))
}
func (f *Functions) CreateBuffer() glapi.Buffer {
	return glapi.Buffer{V: f.put(f.Ctx.Call("createBuffer"))}
}
func (f *Functions) CreateProgram() glapi.Program {
	return glapi.Program{V: f.put(f.Ctx.Call("createProgram"))}
}
func (f *Functions) CreateShader(ty glapi.Enum) glapi.Shader {
	return glapi.Shader{V: f.put(f.Ctx.Call("createShader", int(ty)))}
}
func (f *Functions) CreateTexture() glapi.Texture {
	return glapi.Texture{V: f.put(f.Ctx.Call("createTexture"))}
}
func (f *Functions) CreateVertexArray() glapi.VertexArray {
	return glapi.VertexArray{V: f.put(f.Ctx.Call("createVertexArray"))}
}
func (f *Functions) DeleteBuffer(b glapi.Buffer) {
	f.Ctx.Call("deleteBuffer", f.drop(b.V))
}
func (f *Functions) DeleteProgram(p glapi.Program) {
	f.uniforms.release(p.V)
	f.Ctx.Call("deleteProgram", f.drop(p.V))
}
func (f *Functions) DeleteShader(s glapi.Shader) {
	f.Ctx.Call("deleteShader", f.drop(s.V))
}
func (f *Functions) DeleteTexture(t glapi.Texture) {
	f.Ctx.Call("deleteTexture", f.drop(t.V))
}
func (f *Functions) DeleteVertexArray(a glapi.VertexArray) {
	f.Ctx.Call("deleteVertexArray", f.drop(a.V))
}
func (f *Functions) DetachShader(p glapi.Program, s glapi.Shader) {
	f.Ctx.Call("detachShader", f.get(p.V), f.get(s.V))
}
func (f *Functions) DrawArrays(mode glapi.Enum, first, count int) {
	f.Ctx.Call("drawArrays", int(mode), first, count)
}
func (f *Functions) Enable(cap glapi.Enum) {
	f.Ctx.Call("enable", int(cap))
}
func (f *Functions) EnableVertexAttribArray(a glapi.Attrib) {
	f.Ctx.Call("enableVertexAttribArray", int(a.V))
}
func (f *Functions) GetAttribLocation(p glapi.Program, name string) glapi.Attrib {
	return glapi.Attrib{V: int32(f.Ctx.Call("getAttribLocation", f.get(p.V), name).Int())}
}
func (f *Functions) GetInteger(pname glapi.Enum) int {
	v := f.Ctx.Call("getParameter", int(pname))
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	return v.Int()
}
func (f *Functions) GetInteger4(pname glapi.Enum) [4]int {
	var r [4]int
	v := f.Ctx.Call("getParameter", int(pname))
	if v.IsNull() || v.IsUndefined() {
		return r
	}
	for i := range r {
		r[i] = v.Index(i).Int()
	}
	return r
}
func (f *Functions) GetProgrami(p glapi.Program, pname glapi.Enum) int {
	return paramVal(f.Ctx.Call("getProgramParameter", f.get(p.V), int(pname)))
}
func (f *Functions) GetProgramInfoLog(p glapi.Program) string {
	return f.Ctx.Call("getProgramInfoLog", f.get(p.V)).String()
}
func (f *Functions) GetShaderi(s glapi.Shader, pname glapi.Enum) int {
	return paramVal(f.Ctx.Call("getShaderParameter", f.get(s.V), int(pname)))
}
func (f *Functions) GetShaderInfoLog(s glapi.Shader) string {
	return f.Ctx.Call("getShaderInfoLog", f.get(s.V)).String()
}
func (f *Functions) GetUniformLocation(p glapi.Program, name string) glapi.Uniform {
	loc := f.Ctx.Call("getUniformLocation", f.get(p.V), name)
	if loc.IsNull() || loc.IsUndefined() {
		return glapi.Uniform{V: -1}
	}
	return glapi.Uniform{V: f.uniforms.add(p.V, name, loc)}
}
func (f *Functions) LinkProgram(p glapi.Program) {
	f.Ctx.Call("linkProgram", f.get(p.V))
}
func (f *Functions) PixelStorei(pname glapi.Enum, param int) {
	f.Ctx.Call("pixelStorei", int(pname), param)
}
func (f *Functions) ReadPixels(x, y, width, height int, format, ty glapi.Enum, data []byte) {
	arr := f.uint8Array.New(len(data))
	f.Ctx.Call("readPixels", x, y, width, height, int(format), int(ty), arr)
	js.CopyBytesToGo(data, arr)
}
func (f *Functions) ShaderSource(s glapi.Shader, src string) {
	f.Ctx.Call("shaderSource", f.get(s.V), src)
}
func (f *Functions) TexImage2D(target glapi.Enum, level int, internalFormat glapi.Enum, width, height int, format, ty glapi.Enum) {
	f.Ctx.Call("texImage2D", int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), nil)
}
func (f *Functions) TexParameteri(target, pname glapi.Enum, param int) {
	f.Ctx.Call("texParameteri", int(target), int(pname), param)
}
func (f *Functions) TexSubImage2D(target glapi.Enum, level, x, y, width, height int, format, ty glapi.Enum, data []byte) {
	f.Ctx.Call("texSubImage2D", int(target), level, x, y, width, height, int(format), int(ty), f.byteArrayOf(data))
}
func (f *Functions) Uniform1i(u glapi.Uniform, v int) {
	f.Ctx.Call("uniform1i", f.uniform(u), v)
}
func (f *Functions) Uniform2f(u glapi.Uniform, v0, v1 float32) {
	f.Ctx.Call("uniform2f", f.uniform(u), v0, v1)
}
func (f *Functions) UseProgram(p glapi.Program) {
	f.Ctx.Call("useProgram", f.get(p.V))
}
func (f *Functions) VertexAttribPointer(a glapi.Attrib, size int, ty glapi.Enum, normalized bool, stride, offset int) {
	f.Ctx.Call("vertexAttribPointer", int(a.V), size, int(ty), normalized, stride, offset)
}
func (f *Functions) Viewport(x, y, width, height int) {
	f.Ctx.Call("viewport", x, y, width, height)
}

func (f *Functions) uniform(u glapi.Uniform) js.Value {
	if v, ok := f.uniforms.get(u.V); ok {
		return v
	}
	return js.Null()
}

// paramVal maps the boolean results of getShaderParameter and
// getProgramParameter onto GL's integer convention.
func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return glapi.TRUE
		}
		return glapi.FALSE
	case js.TypeNumber:
		return v.Int()
	default:
		return 0
	}
}
