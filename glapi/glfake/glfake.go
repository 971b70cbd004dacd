// Package glfake is a deterministic software implementation of
// glapi.Functions for tests.
//
// It keeps enough driver state to observe what a renderer did: object
// lifetimes, texture storage, uniform values, attribute layouts, blend
// state, a color framebuffer and a log of every call. Shader "compilation"
// fails when the source contains an #error directive, and linking fails
// when a stage has no main function. Uniform and attribute locations are
// assigned in declaration order.
package glfake

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/richinsley/glplatform/glapi"
)

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(?:\w+\s+)?(\w+)\s*;`)
	attribDecl  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	errorDecl   = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)
)

type TextureObject struct {
	Width, Height int
	// Allocated is false until TexImage2D has been called.
	Allocated bool
	MinFilter int
	MagFilter int
	Pix       []byte
}

type ShaderObject struct {
	Type     glapi.Enum
	Source   string
	Compiled bool
	Log      string
}

type ProgramObject struct {
	Shaders  []uint32
	Linked   bool
	Log      string
	uniforms map[string]int32
	attribs  map[string]int32
	// Values holds the last value written to each uniform location.
	Values map[int32]interface{}
}

// AttribPointer is a recorded VertexAttribPointer call.
type AttribPointer struct {
	Location   int32
	Size       int
	Type       glapi.Enum
	Normalized bool
	Stride     int
	Offset     int
}

// DrawCall captures the state observed by a DrawArrays call.
type DrawCall struct {
	Mode         glapi.Enum
	First, Count int
	Program      uint32
	VertexArray  uint32
	Blend        bool
	BlendSrc     glapi.Enum
	BlendDst     glapi.Enum
	Data         []byte
	Attribs      []AttribPointer
	// Units maps texture unit index to the bound texture name.
	Units map[int]uint32
}

type Functions struct {
	// MaxTextureUnits is reported for MAX_COMBINED_TEXTURE_IMAGE_UNITS.
	MaxTextureUnits int

	Calls []string

	Textures     map[uint32]*TextureObject
	Buffers      map[uint32][]byte
	VertexArrays map[uint32]bool
	Shaders      map[uint32]*ShaderObject
	Programs     map[uint32]*ProgramObject
	Draws        []DrawCall

	Blend              bool
	BlendSrc, BlendDst glapi.Enum
	ViewportRect       [4]int
	ClearRGBA          [4]float32

	// Framebuffer is RGBA8, bottom row first like glReadPixels.
	Framebuffer   []byte
	width, height int

	nextName      uint32
	activeUnit    int
	units         map[int]uint32
	arrayBuffer   uint32
	vertexArray   uint32
	program       uint32
	attribs       map[uint32]map[int32]AttribPointer
	packAlignment int
}

var _ glapi.Functions = (*Functions)(nil)

// New returns a driver with a width×height default framebuffer and the
// viewport covering it.
func New(width, height int) *Functions {
	return &Functions{
		MaxTextureUnits: 16,
		Textures:        make(map[uint32]*TextureObject),
		Buffers:         make(map[uint32][]byte),
		VertexArrays:    make(map[uint32]bool),
		Shaders:         make(map[uint32]*ShaderObject),
		Programs:        make(map[uint32]*ProgramObject),
		ViewportRect:    [4]int{0, 0, width, height},
		Framebuffer:     make([]byte, width*height*4),
		width:           width,
		height:          height,
		units:           make(map[int]uint32),
		attribs:         make(map[uint32]map[int32]AttribPointer),
		packAlignment:   4,
	}
}

func (f *Functions) record(name string) {
	f.Calls = append(f.Calls, name)
}

// Count returns how many times the named method has been called.
func (f *Functions) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *Functions) name() uint32 {
	f.nextName++
	return f.nextName
}

// UniformValue returns the value last written to the named uniform of p.
func (f *Functions) UniformValue(p glapi.Program, name string) (interface{}, bool) {
	prog := f.Programs[p.V]
	if prog == nil {
		return nil, false
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := prog.Values[loc]
	return v, ok
}

// Pixel returns the framebuffer color at (x, y), y counted from the bottom.
func (f *Functions) Pixel(x, y int) [4]byte {
	i := (y*f.width + x) * 4
	return [4]byte{f.Framebuffer[i], f.Framebuffer[i+1], f.Framebuffer[i+2], f.Framebuffer[i+3]}
}

func (f *Functions) ActiveTexture(unit glapi.Enum) {
	f.record("ActiveTexture")
	f.activeUnit = int(unit) - glapi.TEXTURE0
}

func (f *Functions) AttachShader(p glapi.Program, s glapi.Shader) {
	f.record("AttachShader")
	if prog := f.Programs[p.V]; prog != nil {
		prog.Shaders = append(prog.Shaders, s.V)
	}
}

func (f *Functions) BindBuffer(target glapi.Enum, b glapi.Buffer) {
	f.record("BindBuffer")
	if target == glapi.ARRAY_BUFFER {
		f.arrayBuffer = b.V
	}
}

func (f *Functions) BindTexture(target glapi.Enum, t glapi.Texture) {
	f.record("BindTexture")
	f.units[f.activeUnit] = t.V
}

func (f *Functions) BindVertexArray(a glapi.VertexArray) {
	f.record("BindVertexArray")
	f.vertexArray = a.V
}

func (f *Functions) BlendFunc(sfactor, dfactor glapi.Enum) {
	f.record("BlendFunc")
	f.BlendSrc, f.BlendDst = sfactor, dfactor
}

func (f *Functions) BufferData(target glapi.Enum, data []byte, usage glapi.Enum) {
	f.record("BufferData")
	if target == glapi.ARRAY_BUFFER && f.arrayBuffer != 0 {
		f.Buffers[f.arrayBuffer] = append([]byte(nil), data...)
	}
}

func (f *Functions) Clear(mask glapi.Enum) {
	f.record("Clear")
	if mask&glapi.COLOR_BUFFER_BIT == 0 {
		return
	}
	var c [4]byte
	for i, v := range f.ClearRGBA {
		c[i] = byte(math.Round(float64(clamp01(v)) * 255))
	}
	for i := 0; i < len(f.Framebuffer); i += 4 {
		copy(f.Framebuffer[i:i+4], c[:])
	}
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.record("ClearColor")
	f.ClearRGBA = [4]float32{r, g, b, a}
}

func (f *Functions) CompileShader(s glapi.Shader) {
	f.record("CompileShader")
	sh := f.Shaders[s.V]
	if sh == nil {
		return
	}
	if m := errorDecl.FindStringSubmatch(sh.Source); m != nil {
		sh.Compiled = false
		sh.Log = fmt.Sprintf("ERROR: 0:1: '#error' : %s", strings.TrimSpace(m[1]))
		return
	}
	sh.Compiled = true
	sh.Log = ""
}

func (f *Functions) CreateBuffer() glapi.Buffer {
	f.record("CreateBuffer")
	n := f.name()
	f.Buffers[n] = nil
	return glapi.Buffer{V: n}
}

func (f *Functions) CreateProgram() glapi.Program {
	f.record("CreateProgram")
	n := f.name()
	f.Programs[n] = &ProgramObject{Values: make(map[int32]interface{})}
	return glapi.Program{V: n}
}

func (f *Functions) CreateShader(ty glapi.Enum) glapi.Shader {
	f.record("CreateShader")
	n := f.name()
	f.Shaders[n] = &ShaderObject{Type: ty}
	return glapi.Shader{V: n}
}

func (f *Functions) CreateTexture() glapi.Texture {
	f.record("CreateTexture")
	n := f.name()
	f.Textures[n] = &TextureObject{}
	return glapi.Texture{V: n}
}

func (f *Functions) CreateVertexArray() glapi.VertexArray {
	f.record("CreateVertexArray")
	n := f.name()
	f.VertexArrays[n] = true
	return glapi.VertexArray{V: n}
}

func (f *Functions) DeleteBuffer(b glapi.Buffer) {
	f.record("DeleteBuffer")
	delete(f.Buffers, b.V)
}

func (f *Functions) DeleteProgram(p glapi.Program) {
	f.record("DeleteProgram")
	delete(f.Programs, p.V)
	delete(f.attribs, p.V)
}

func (f *Functions) DeleteShader(s glapi.Shader) {
	f.record("DeleteShader")
	delete(f.Shaders, s.V)
}

func (f *Functions) DeleteTexture(t glapi.Texture) {
	f.record("DeleteTexture")
	delete(f.Textures, t.V)
}

func (f *Functions) DeleteVertexArray(a glapi.VertexArray) {
	f.record("DeleteVertexArray")
	delete(f.VertexArrays, a.V)
}

func (f *Functions) DetachShader(p glapi.Program, s glapi.Shader) {
	f.record("DetachShader")
	prog := f.Programs[p.V]
	if prog == nil {
		return
	}
	for i, n := range prog.Shaders {
		if n == s.V {
			prog.Shaders = append(prog.Shaders[:i], prog.Shaders[i+1:]...)
			return
		}
	}
}

func (f *Functions) DrawArrays(mode glapi.Enum, first, count int) {
	f.record("DrawArrays")
	dc := DrawCall{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     f.program,
		VertexArray: f.vertexArray,
		Blend:       f.Blend,
		BlendSrc:    f.BlendSrc,
		BlendDst:    f.BlendDst,
		Data:        append([]byte(nil), f.Buffers[f.arrayBuffer]...),
		Units:       make(map[int]uint32, len(f.units)),
	}
	for u, t := range f.units {
		dc.Units[u] = t
	}
	for _, ap := range f.attribs[f.program] {
		dc.Attribs = append(dc.Attribs, ap)
	}
	sort.Slice(dc.Attribs, func(i, j int) bool { return dc.Attribs[i].Location < dc.Attribs[j].Location })
	f.Draws = append(f.Draws, dc)
}

func (f *Functions) Enable(cap glapi.Enum) {
	f.record("Enable")
	if cap == glapi.BLEND {
		f.Blend = true
	}
}

func (f *Functions) EnableVertexAttribArray(a glapi.Attrib) {
	f.record("EnableVertexAttribArray")
}

func (f *Functions) GetAttribLocation(p glapi.Program, name string) glapi.Attrib {
	f.record("GetAttribLocation")
	prog := f.Programs[p.V]
	if prog == nil || !prog.Linked {
		return glapi.Attrib{V: -1}
	}
	if loc, ok := prog.attribs[name]; ok {
		return glapi.Attrib{V: loc}
	}
	return glapi.Attrib{V: -1}
}

func (f *Functions) GetInteger(pname glapi.Enum) int {
	f.record("GetInteger")
	switch pname {
	case glapi.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return f.MaxTextureUnits
	case glapi.PACK_ALIGNMENT:
		return f.packAlignment
	}
	return 0
}

func (f *Functions) GetInteger4(pname glapi.Enum) [4]int {
	f.record("GetInteger4")
	if pname == glapi.VIEWPORT {
		return f.ViewportRect
	}
	return [4]int{}
}

func (f *Functions) GetProgrami(p glapi.Program, pname glapi.Enum) int {
	f.record("GetProgrami")
	prog := f.Programs[p.V]
	if prog == nil {
		return 0
	}
	switch pname {
	case glapi.LINK_STATUS:
		if prog.Linked {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.INFO_LOG_LENGTH:
		if prog.Log == "" {
			return 0
		}
		return len(prog.Log) + 1
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p glapi.Program) string {
	f.record("GetProgramInfoLog")
	if prog := f.Programs[p.V]; prog != nil {
		return prog.Log
	}
	return ""
}

func (f *Functions) GetShaderi(s glapi.Shader, pname glapi.Enum) int {
	f.record("GetShaderi")
	sh := f.Shaders[s.V]
	if sh == nil {
		return 0
	}
	switch pname {
	case glapi.COMPILE_STATUS:
		if sh.Compiled {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.INFO_LOG_LENGTH:
		if sh.Log == "" {
			return 0
		}
		return len(sh.Log) + 1
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s glapi.Shader) string {
	f.record("GetShaderInfoLog")
	if sh := f.Shaders[s.V]; sh != nil {
		return sh.Log
	}
	return ""
}

func (f *Functions) GetUniformLocation(p glapi.Program, name string) glapi.Uniform {
	f.record("GetUniformLocation")
	prog := f.Programs[p.V]
	if prog == nil || !prog.Linked {
		return glapi.Uniform{V: -1}
	}
	if loc, ok := prog.uniforms[name]; ok {
		return glapi.Uniform{V: loc}
	}
	return glapi.Uniform{V: -1}
}

func (f *Functions) LinkProgram(p glapi.Program) {
	f.record("LinkProgram")
	prog := f.Programs[p.V]
	if prog == nil {
		return
	}
	prog.Linked = false
	prog.uniforms = make(map[string]int32)
	prog.attribs = make(map[string]int32)
	stages := map[glapi.Enum]*ShaderObject{}
	for _, n := range prog.Shaders {
		sh := f.Shaders[n]
		if sh == nil || !sh.Compiled {
			prog.Log = "error: attached shader is not compiled"
			return
		}
		stages[sh.Type] = sh
	}
	for _, st := range []glapi.Enum{glapi.VERTEX_SHADER, glapi.FRAGMENT_SHADER} {
		sh := stages[st]
		if sh == nil {
			prog.Log = fmt.Sprintf("error: no %s shader attached", stageName(st))
			return
		}
		if !strings.Contains(sh.Source, "main(") {
			prog.Log = fmt.Sprintf("error: missing main function in %s shader", stageName(st))
			return
		}
	}
	var loc int32
	for _, st := range []glapi.Enum{glapi.VERTEX_SHADER, glapi.FRAGMENT_SHADER} {
		for _, m := range uniformDecl.FindAllStringSubmatch(stages[st].Source, -1) {
			if _, ok := prog.uniforms[m[1]]; !ok {
				prog.uniforms[m[1]] = loc
				loc++
			}
		}
	}
	for i, m := range attribDecl.FindAllStringSubmatch(stages[glapi.VERTEX_SHADER].Source, -1) {
		prog.attribs[m[1]] = int32(i)
	}
	prog.Linked = true
	prog.Log = ""
}

func (f *Functions) PixelStorei(pname glapi.Enum, param int) {
	f.record("PixelStorei")
	if pname == glapi.PACK_ALIGNMENT {
		f.packAlignment = param
	}
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty glapi.Enum, data []byte) {
	f.record("ReadPixels")
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sx, sy := x+col, y+row
			if sx < 0 || sy < 0 || sx >= f.width || sy >= f.height {
				continue
			}
			src := (sy*f.width + sx) * 4
			dst := (row*width + col) * 4
			if dst+4 > len(data) {
				return
			}
			copy(data[dst:dst+4], f.Framebuffer[src:src+4])
		}
	}
}

func (f *Functions) ShaderSource(s glapi.Shader, src string) {
	f.record("ShaderSource")
	if sh := f.Shaders[s.V]; sh != nil {
		sh.Source = src
	}
}

func (f *Functions) TexImage2D(target glapi.Enum, level int, internalFormat glapi.Enum, width, height int, format, ty glapi.Enum) {
	f.record("TexImage2D")
	t := f.Textures[f.units[f.activeUnit]]
	if t == nil {
		return
	}
	t.Width, t.Height = width, height
	t.Allocated = true
	t.Pix = make([]byte, width*height*4)
}

func (f *Functions) TexParameteri(target, pname glapi.Enum, param int) {
	f.record("TexParameteri")
	t := f.Textures[f.units[f.activeUnit]]
	if t == nil {
		return
	}
	switch pname {
	case glapi.TEXTURE_MIN_FILTER:
		t.MinFilter = param
	case glapi.TEXTURE_MAG_FILTER:
		t.MagFilter = param
	}
}

func (f *Functions) TexSubImage2D(target glapi.Enum, level, x, y, width, height int, format, ty glapi.Enum, data []byte) {
	f.record("TexSubImage2D")
	t := f.Textures[f.units[f.activeUnit]]
	if t == nil || !t.Allocated {
		return
	}
	for row := 0; row < height; row++ {
		if y+row >= t.Height {
			break
		}
		src := row * width * 4
		dst := ((y+row)*t.Width + x) * 4
		n := width * 4
		if x+width > t.Width {
			n = (t.Width - x) * 4
		}
		if n <= 0 || src+n > len(data) {
			continue
		}
		copy(t.Pix[dst:dst+n], data[src:src+n])
	}
}

func (f *Functions) Uniform1i(u glapi.Uniform, v int) {
	f.record("Uniform1i")
	f.setUniform(u, v)
}

func (f *Functions) Uniform2f(u glapi.Uniform, v0, v1 float32) {
	f.record("Uniform2f")
	f.setUniform(u, [2]float32{v0, v1})
}

func (f *Functions) setUniform(u glapi.Uniform, v interface{}) {
	prog := f.Programs[f.program]
	if prog == nil || !u.Valid() {
		return
	}
	prog.Values[u.V] = v
}

func (f *Functions) UseProgram(p glapi.Program) {
	f.record("UseProgram")
	f.program = p.V
}

func (f *Functions) VertexAttribPointer(a glapi.Attrib, size int, ty glapi.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer")
	m := f.attribs[f.program]
	if m == nil {
		m = make(map[int32]AttribPointer)
		f.attribs[f.program] = m
	}
	m[a.V] = AttribPointer{
		Location:   a.V,
		Size:       size,
		Type:       ty,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport")
	f.ViewportRect = [4]int{x, y, width, height}
}

func stageName(ty glapi.Enum) string {
	if ty == glapi.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
