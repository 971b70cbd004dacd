// Package glapi defines the graphics driver boundary shared by the native
// OpenGL and WebGL2 targets.
//
// Every method of Functions must be called on the thread that holds the
// current context. Implementations do not check this.
package glapi

type Enum uint32

type (
	Buffer      struct{ V uint32 }
	Program     struct{ V uint32 }
	Shader      struct{ V uint32 }
	Texture     struct{ V uint32 }
	VertexArray struct{ V uint32 }
	Uniform     struct{ V int32 }
	Attrib      struct{ V int32 }
)

func (b Buffer) Valid() bool      { return b.V != 0 }
func (p Program) Valid() bool     { return p.V != 0 }
func (s Shader) Valid() bool      { return s.V != 0 }
func (t Texture) Valid() bool     { return t.V != 0 }
func (a VertexArray) Valid() bool { return a.V != 0 }
func (u Uniform) Valid() bool     { return u.V != -1 }
func (a Attrib) Valid() bool      { return a.V != -1 }

// Functions is the immediate-mode subset of OpenGL 4.1 core / WebGL2 the
// renderer needs.
type Functions interface {
	ActiveTexture(unit Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendFunc(sfactor, dfactor Enum)
	BufferData(target Enum, data []byte, usage Enum)
	Clear(mask Enum)
	ClearColor(r, g, b, a float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	DeleteBuffer(b Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)
	DeleteVertexArray(a VertexArray)
	DetachShader(p Program, s Shader)
	DrawArrays(mode Enum, first, count int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	GetAttribLocation(p Program, name string) Attrib
	GetInteger(pname Enum) int
	GetInteger4(pname Enum) [4]int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1i(u Uniform, v int)
	Uniform2f(u Uniform, v0, v1 float32)
	UseProgram(p Program)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
