//go:build !js

// Package glcore implements glapi.Functions on desktop OpenGL 4.1 core
// through go-gl.
package glcore

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glplatform/glapi"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Functions forwards every call to the go-gl bindings. The zero value is
// ready to use once Init has succeeded.
type Functions struct{}

var _ glapi.Functions = (*Functions)(nil)

// Init loads the OpenGL function pointers. The context must be current on
// the calling thread. Subsequent calls are no-ops.
func Init() (*Functions, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &Functions{}, nil
}

func (f *Functions) ActiveTexture(unit glapi.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (f *Functions) AttachShader(p glapi.Program, s glapi.Shader) {
	gl.AttachShader(p.V, s.V)
}

func (f *Functions) BindBuffer(target glapi.Enum, b glapi.Buffer) {
	gl.BindBuffer(uint32(target), b.V)
}

func (f *Functions) BindTexture(target glapi.Enum, t glapi.Texture) {
	gl.BindTexture(uint32(target), t.V)
}

func (f *Functions) BindVertexArray(a glapi.VertexArray) {
	gl.BindVertexArray(a.V)
}

func (f *Functions) BlendFunc(sfactor, dfactor glapi.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (f *Functions) BufferData(target glapi.Enum, data []byte, usage glapi.Enum) {
	gl.BufferData(uint32(target), len(data), ptr(data), uint32(usage))
}

func (f *Functions) Clear(mask glapi.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (f *Functions) CompileShader(s glapi.Shader) {
	gl.CompileShader(s.V)
}

func (f *Functions) CreateBuffer() glapi.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glapi.Buffer{V: b}
}

func (f *Functions) CreateProgram() glapi.Program {
	return glapi.Program{V: gl.CreateProgram()}
}

func (f *Functions) CreateShader(ty glapi.Enum) glapi.Shader {
	return glapi.Shader{V: gl.CreateShader(uint32(ty))}
}

func (f *Functions) CreateTexture() glapi.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return glapi.Texture{V: t}
}

func (f *Functions) CreateVertexArray() glapi.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return glapi.VertexArray{V: a}
}

func (f *Functions) DeleteBuffer(b glapi.Buffer) {
	gl.DeleteBuffers(1, &b.V)
}

func (f *Functions) DeleteProgram(p glapi.Program) {
	gl.DeleteProgram(p.V)
}

func (f *Functions) DeleteShader(s glapi.Shader) {
	gl.DeleteShader(s.V)
}

func (f *Functions) DeleteTexture(t glapi.Texture) {
	gl.DeleteTextures(1, &t.V)
}

func (f *Functions) DeleteVertexArray(a glapi.VertexArray) {
	gl.DeleteVertexArrays(1, &a.V)
}

func (f *Functions) DetachShader(p glapi.Program, s glapi.Shader) {
	gl.DetachShader(p.V, s.V)
}

func (f *Functions) DrawArrays(mode glapi.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) Enable(cap glapi.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a glapi.Attrib) {
	gl.EnableVertexAttribArray(uint32(a.V))
}

func (f *Functions) GetAttribLocation(p glapi.Program, name string) glapi.Attrib {
	return glapi.Attrib{V: gl.GetAttribLocation(p.V, gl.Str(name+"\x00"))}
}

func (f *Functions) GetInteger(pname glapi.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetInteger4(pname glapi.Enum) [4]int {
	var v [4]int32
	gl.GetIntegerv(uint32(pname), &v[0])
	return [4]int{int(v[0]), int(v[1]), int(v[2]), int(v[3])}
}

func (f *Functions) GetProgrami(p glapi.Program, pname glapi.Enum) int {
	var v int32
	gl.GetProgramiv(p.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p glapi.Program) string {
	var logLength int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(p.V, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) GetShaderi(s glapi.Shader, pname glapi.Enum) int {
	var v int32
	gl.GetShaderiv(s.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s glapi.Shader) string {
	var logLength int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(s.V, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (f *Functions) GetUniformLocation(p glapi.Program, name string) glapi.Uniform {
	return glapi.Uniform{V: gl.GetUniformLocation(p.V, gl.Str(name+"\x00"))}
}

func (f *Functions) LinkProgram(p glapi.Program) {
	gl.LinkProgram(p.V)
}

func (f *Functions) PixelStorei(pname glapi.Enum, param int) {
	gl.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty glapi.Enum, data []byte) {
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) ShaderSource(s glapi.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s.V, 1, csources, nil)
	free()
}

func (f *Functions) TexImage2D(target glapi.Enum, level int, internalFormat glapi.Enum, width, height int, format, ty glapi.Enum) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), nil)
}

func (f *Functions) TexParameteri(target, pname glapi.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) TexSubImage2D(target glapi.Enum, level, x, y, width, height int, format, ty glapi.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) Uniform1i(u glapi.Uniform, v int) {
	gl.Uniform1i(u.V, int32(v))
}

func (f *Functions) Uniform2f(u glapi.Uniform, v0, v1 float32) {
	gl.Uniform2f(u.V, v0, v1)
}

func (f *Functions) UseProgram(p glapi.Program) {
	gl.UseProgram(p.V)
}

func (f *Functions) VertexAttribPointer(a glapi.Attrib, size int, ty glapi.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(a.V), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ptr returns nil for empty slices so zero-length uploads never touch
// a dangling address.
func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}
