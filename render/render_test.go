package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/richinsley/glplatform/glapi"
	"github.com/richinsley/glplatform/glapi/glfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexShader = `#version 300 es
in vec2 a_pos;
in vec2 a_uv;
in uint a_color;
uniform vec2 u_offset;
out vec2 v_uv;
void main() {
    v_uv = a_uv;
    gl_Position = vec4(a_pos + u_offset, 0.0, 1.0);
}
`

const testFragmentShader = `#version 300 es
precision mediump float;
in vec2 v_uv;
uniform sampler2D u_tex;
uniform sampler2D u_mask;
out vec4 fragColor;
void main() {
    fragColor = texture(u_tex, v_uv) * texture(u_mask, v_uv).a;
}
`

type spriteVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color uint32
}

func (spriteVertex) Stride() int { return 20 }

func (spriteVertex) Attributes() []Attribute {
	return []Attribute{
		{Name: "a_pos", Count: 2, Type: Float},
		{Name: "a_uv", Count: 2, Type: Float},
		{Name: "a_color", Count: 1, Type: Unsigned},
	}
}

// paddedVertex declares a stride that does not match its size.
type paddedVertex struct {
	Pos [2]float32
}

func (paddedVertex) Stride() int { return 16 }

func (paddedVertex) Attributes() []Attribute {
	return []Attribute{{Name: "a_pos", Count: 2, Type: Float}}
}

// overfullVertex declares more attribute bytes than it has.
type overfullVertex struct {
	Pos [2]float32
}

func (overfullVertex) Stride() int { return 8 }

func (overfullVertex) Attributes() []Attribute {
	return []Attribute{
		{Name: "a_pos", Count: 2, Type: Float},
		{Name: "a_uv", Count: 2, Type: Float},
	}
}

var quad = []spriteVertex{
	{Pos: [2]float32{-1, -1}, UV: [2]float32{0, 0}, Color: 0xffffffff},
	{Pos: [2]float32{1, -1}, UV: [2]float32{1, 0}, Color: 0xffffffff},
	{Pos: [2]float32{1, 1}, UV: [2]float32{1, 1}, Color: 0xffffffff},
}

func newTestDevice(t *testing.T) (*Device, *glfake.Functions, *glfake.Context) {
	t.Helper()
	f := glfake.New(64, 32)
	ctx := glfake.NewContext(64, 32)
	d, err := NewDevice(f, ctx)
	require.NoError(t, err)
	return d, f, ctx
}

func newTestProgram(t *testing.T, d *Device) *Program {
	t.Helper()
	p, err := d.CreateProgram(testVertexShader, testFragmentShader)
	require.NoError(t, err)
	return p
}

func TestNewDeviceRequiresCurrentContext(t *testing.T) {
	ctx := glfake.NewContext(1, 1)
	ctx.Current = false
	_, err := NewDevice(glfake.New(1, 1), ctx)
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestCreateProgram(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)

	assert.Empty(t, p.Uniforms())
	assert.False(t, p.Destroyed())
	assert.Len(t, f.Programs, 1)
	assert.Empty(t, f.Shaders, "shaders are released after linking")
}

func TestCreateProgramVertexCompileError(t *testing.T) {
	d, f, _ := newTestDevice(t)
	_, err := d.CreateProgram("#version 300 es\n#error bad vertex\nvoid main() {}\n", testFragmentShader)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, VertexStage, ce.Stage)
	assert.Contains(t, ce.Log, "bad vertex")
	assert.Equal(t, 1, f.Count("CreateShader"), "fragment stage must not be compiled")
	assert.Zero(t, f.Count("LinkProgram"))
	assert.Empty(t, f.Shaders)
}

func TestCreateProgramFragmentCompileError(t *testing.T) {
	d, f, _ := newTestDevice(t)
	_, err := d.CreateProgram(testVertexShader, "#error bad fragment\n")

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FragmentStage, ce.Stage)
	assert.NotEmpty(t, ce.Log)
	assert.Zero(t, f.Count("LinkProgram"))
	assert.Empty(t, f.Shaders, "vertex shader is released")
}

func TestCreateProgramLinkError(t *testing.T) {
	d, f, _ := newTestDevice(t)
	_, err := d.CreateProgram(testVertexShader, "#version 300 es\nout vec4 c;\n")

	var le *LinkError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Log, "missing main")
	assert.Empty(t, f.Programs)
	assert.Empty(t, f.Shaders)
}

func TestSetUniformLastWriteWins(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	p.SetUniform("u_offset", Vec2{1, 2})
	p.SetUniform("u_offset", Vec2{3, 4})
	assert.Zero(t, f.Count("Uniform2f"), "uniforms are deferred to the draw")
	assert.Len(t, p.Uniforms(), 2)

	require.NoError(t, RenderVertices(vb, p, quad))
	assert.Equal(t, 2, f.Count("Uniform2f"))
	v, ok := f.UniformValue(glapi.Program{V: p.ref.V}, "u_offset")
	require.True(t, ok)
	assert.Equal(t, [2]float32{3, 4}, v)
}

func TestUniformLocationsAreCached(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	p.SetUniform("u_offset", Vec2{1, 2})
	require.NoError(t, RenderVertices(vb, p, quad))
	require.NoError(t, RenderVertices(vb, p, quad))

	assert.Equal(t, 1, f.Count("GetUniformLocation"))
	assert.Equal(t, 3, f.Count("GetAttribLocation"))
	assert.Equal(t, 2, f.Count("DrawArrays"))
}

func TestMapNames(t *testing.T) {
	d, f, _ := newTestDevice(t)
	vs := `#version 410
in vec2 _ua_pos;
uniform vec2 _uu_offset;
void main() { gl_Position = vec4(_ua_pos + _uu_offset, 0.0, 1.0); }
`
	fs := "#version 410\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
	p, err := d.CreateProgram(vs, fs)
	require.NoError(t, err)
	p.MapNames(map[string]string{"u_offset": "_uu_offset", "a_pos": "_ua_pos"})

	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	p.SetUniform("u_offset", Vec2{5, 6})
	require.NoError(t, RenderVertices(vb, p, []paddedVertexFixed{{}, {}, {}}))

	v, ok := f.UniformValue(glapi.Program{V: p.ref.V}, "_uu_offset")
	require.True(t, ok)
	assert.Equal(t, [2]float32{5, 6}, v)
	draw := f.Draws[0]
	require.Len(t, draw.Attribs, 1)
	assert.Equal(t, int32(0), draw.Attribs[0].Location)
}

type paddedVertexFixed struct {
	Pos [2]float32
}

func (paddedVertexFixed) Stride() int { return 8 }

func (paddedVertexFixed) Attributes() []Attribute {
	return []Attribute{{Name: "a_pos", Count: 2, Type: Float}}
}

func TestRenderVerticesState(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	require.NoError(t, RenderVertices(vb, p, quad))
	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]

	assert.Equal(t, glapi.Enum(glapi.TRIANGLES), draw.Mode)
	assert.Equal(t, 0, draw.First)
	assert.Equal(t, 3, draw.Count)
	assert.True(t, draw.Blend)
	assert.Equal(t, glapi.Enum(glapi.SRC_ALPHA), draw.BlendSrc)
	assert.Equal(t, glapi.Enum(glapi.ONE_MINUS_SRC_ALPHA), draw.BlendDst)
	assert.Equal(t, p.ref.V, draw.Program)
	assert.Equal(t, vb.vao.V, draw.VertexArray)
	assert.Len(t, draw.Data, len(quad)*20)
}

func TestRenderVerticesAttributeOffsets(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	require.NoError(t, RenderVertices(vb, p, quad))
	attrs := f.Draws[0].Attribs
	require.Len(t, attrs, 3)

	want := []glfake.AttribPointer{
		{Location: 0, Size: 2, Type: glapi.FLOAT, Stride: 20, Offset: 0},
		{Location: 1, Size: 2, Type: glapi.FLOAT, Stride: 20, Offset: 8},
		{Location: 2, Size: 1, Type: glapi.UNSIGNED_INT, Stride: 20, Offset: 16},
	}
	assert.Equal(t, want, attrs)
}

func TestOffsets(t *testing.T) {
	offsets, err := Offsets(spriteVertex{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8, 16}, offsets)

	_, err = Offsets(overfullVertex{})
	assert.ErrorIs(t, err, ErrLayout)
}

func TestRenderVerticesLayoutMismatch(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	err = RenderVertices(vb, p, []paddedVertex{{}})
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, ErrLayout)

	err = RenderVertices(vb, p, []overfullVertex{{}})
	assert.ErrorIs(t, err, ErrLayout)

	assert.Zero(t, f.Count("BufferData"), "nothing is uploaded on a rejected draw")
	assert.Zero(t, f.Count("DrawArrays"))
}

func TestRenderVerticesPointerVertex(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	v := quad[0]
	require.NotPanics(t, func() {
		err = RenderVertices(vb, p, []*spriteVertex{&v, &v, &v})
	})
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, ErrLayout)
	assert.Zero(t, f.Count("BufferData"))
	assert.Zero(t, f.Count("DrawArrays"))
}

func TestRenderVerticesEmpty(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	require.NoError(t, RenderVertices(vb, p, []spriteVertex{}))
	require.Len(t, f.Draws, 1)
	assert.Zero(t, f.Draws[0].Count)
	assert.Empty(t, f.Draws[0].Data)
}

func TestRenderVerticesTextureUnits(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	tex, err := d.CreateTexture(4, 4, Linear)
	require.NoError(t, err)
	mask, err := d.CreateTexture(4, 4, Nearest)
	require.NoError(t, err)

	p.SetUniform("u_tex", Sampler{tex})
	p.SetUniform("u_offset", Vec2{0, 0})
	p.SetUniform("u_mask", Sampler{mask})
	require.NoError(t, RenderVertices(vb, p, quad))

	draw := f.Draws[0]
	assert.Equal(t, tex.ref.V, draw.Units[0])
	assert.Equal(t, mask.ref.V, draw.Units[1])
	prog := glapi.Program{V: p.ref.V}
	v, _ := f.UniformValue(prog, "u_tex")
	assert.Equal(t, 0, v)
	v, _ = f.UniformValue(prog, "u_mask")
	assert.Equal(t, 1, v)
}

func TestRenderVerticesTextureUnitOverflow(t *testing.T) {
	d, f, _ := newTestDevice(t)
	d.maxUnits = 1
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	tex, err := d.CreateTexture(1, 1, Linear)
	require.NoError(t, err)

	p.SetUniform("u_tex", Sampler{tex})
	p.SetUniform("u_mask", Sampler{tex})
	err = RenderVertices(vb, p, quad)

	var le *ResourceLimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Requested)
	assert.Equal(t, 1, le.Limit)
	assert.Zero(t, f.Count("DrawArrays"))
}

func TestRenderVerticesDestroyedResources(t *testing.T) {
	d, _, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	tex, err := d.CreateTexture(2, 2, Linear)
	require.NoError(t, err)

	p.SetUniform("u_tex", Sampler{tex})
	tex.Destroy()
	tex.Destroy()
	assert.ErrorIs(t, RenderVertices(vb, p, quad), ErrDestroyed)

	p.ClearUniforms()
	vb.Destroy()
	assert.ErrorIs(t, RenderVertices(vb, p, quad), ErrDestroyed)

	vb2, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	p.Destroy()
	p.Destroy()
	assert.ErrorIs(t, RenderVertices(vb2, p, quad), ErrDestroyed)
}

func TestRenderVerticesWithoutContext(t *testing.T) {
	d, f, ctx := newTestDevice(t)
	p := newTestProgram(t, d)
	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)

	ctx.Current = false
	err = RenderVertices(vb, p, quad)
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Zero(t, f.Count("DrawArrays"))

	_, err = d.CreateTexture(1, 1, Linear)
	assert.ErrorIs(t, err, ErrNoContext)
	_, err = d.CreateProgram(testVertexShader, testFragmentShader)
	assert.ErrorIs(t, err, ErrNoContext)
	_, err = d.CreateVertexBuffer()
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestScreenSize(t *testing.T) {
	d, _, _ := newTestDevice(t)
	w, h, err := d.ScreenSize()
	require.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	require.NoError(t, d.SetViewport(0, 0, 320, 200))
	w, h, err = d.ScreenSize()
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestFitViewportFollowsFramebuffer(t *testing.T) {
	d, f, ctx := newTestDevice(t)

	ctx.Width, ctx.Height = 128, 96
	w, h, err := d.FitViewport()
	require.NoError(t, err)
	assert.Equal(t, 128, w)
	assert.Equal(t, 96, h)
	assert.Equal(t, [4]int{0, 0, 128, 96}, f.ViewportRect)

	sw, sh, err := d.ScreenSize()
	require.NoError(t, err)
	assert.Equal(t, w, sw)
	assert.Equal(t, h, sh)

	ctx.Current = false
	_, _, err = d.FitViewport()
	assert.ErrorIs(t, err, ErrNoContext)
	assert.ErrorIs(t, d.Clear(nil), ErrNoContext)
	assert.Equal(t, 1, f.Count("Viewport"))
	assert.Zero(t, f.Count("Clear"))
}

func TestClearDefaultsToOpaqueBlack(t *testing.T) {
	d, f, _ := newTestDevice(t)
	for i := range f.Framebuffer {
		f.Framebuffer[i] = 0x7f
	}

	require.NoError(t, d.Clear(nil))
	assert.Equal(t, [4]float32{0, 0, 0, 1}, f.ClearRGBA)

	pix, err := d.ReadPixels(image.Rect(0, 0, 64, 32))
	require.NoError(t, err)
	require.Len(t, pix, 64*32*4)
	for i := 0; i < len(pix); i += 4 {
		if !assert.Equal(t, []byte{0, 0, 0, 255}, pix[i:i+4], "pixel %d", i/4) {
			break
		}
	}
}

func TestClearColor(t *testing.T) {
	d, f, _ := newTestDevice(t)
	require.NoError(t, d.Clear(&Color{R: 1, G: 0, B: 1, A: 1}))
	assert.Equal(t, [4]byte{255, 0, 255, 255}, f.Pixel(10, 10))
}

func TestReadImageIsTopDown(t *testing.T) {
	d, f, _ := newTestDevice(t)
	require.NoError(t, d.Clear(nil))
	// Mark the bottom-left pixel.
	copy(f.Framebuffer[0:4], []byte{255, 0, 0, 255})

	img, err := d.ReadImage(image.Rect(0, 0, 64, 32))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 31))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
}
