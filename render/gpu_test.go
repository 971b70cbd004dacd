//go:build gpu && linux

package render_test

import (
	"image"
	"image/color"
	"os"
	"runtime"
	"testing"

	"github.com/richinsley/glplatform/glapi/glcore"
	"github.com/richinsley/glplatform/headless"
	"github.com/richinsley/glplatform/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	runtime.LockOSThread()
	os.Exit(m.Run())
}

const quadVS = `#version 410 core
in vec2 a_pos;
out vec2 v_uv;
void main() {
    v_uv = a_pos * 0.5 + 0.5;
    gl_Position = vec4(a_pos, 0.0, 1.0);
}
`

const quadFS = `#version 410 core
in vec2 v_uv;
uniform sampler2D u_tex;
uniform vec2 u_tint;
out vec4 fragColor;
void main() {
    fragColor = texture(u_tex, v_uv) * vec4(u_tint.x, u_tint.y, 1.0, 1.0);
}
`

type quadVertex struct {
	X, Y float32
}

func (quadVertex) Stride() int { return 8 }

func (quadVertex) Attributes() []render.Attribute {
	return []render.Attribute{{Name: "a_pos", Count: 2, Type: render.Float}}
}

func TestHeadlessDraw(t *testing.T) {
	ctx, err := headless.NewHeadless(64, 64)
	if err != nil {
		t.Skipf("no EGL context: %v", err)
	}
	defer ctx.Shutdown()

	f, err := glcore.Init()
	require.NoError(t, err)
	d, err := render.NewDevice(f, ctx)
	require.NoError(t, err)

	w, h, err := d.ScreenSize()
	require.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)

	tex, err := d.CreateTexture(2, 2, render.Nearest)
	require.NoError(t, err)
	defer tex.Destroy()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		src.SetRGBA(i%2, i/2, color.RGBA{255, 255, 255, 255})
	}
	require.NoError(t, tex.SetRegion(src, image.Point{}))

	p, err := d.CreateProgram(quadVS, quadFS)
	require.NoError(t, err)
	defer p.Destroy()
	p.SetUniform("u_tex", render.Sampler{Texture: tex})
	p.SetUniform("u_tint", render.Vec2{X: 1, Y: 0})

	vb, err := d.CreateVertexBuffer()
	require.NoError(t, err)
	defer vb.Destroy()

	require.NoError(t, d.Clear(nil))
	quad := []quadVertex{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}
	require.NoError(t, render.RenderVertices(vb, p, quad))

	img, err := d.ReadImage(image.Rect(0, 0, 64, 64))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(32, 32))
}

func TestHeadlessCompileError(t *testing.T) {
	ctx, err := headless.NewHeadless(8, 8)
	if err != nil {
		t.Skipf("no EGL context: %v", err)
	}
	defer ctx.Shutdown()

	f, err := glcore.Init()
	require.NoError(t, err)
	d, err := render.NewDevice(f, ctx)
	require.NoError(t, err)

	_, err = d.CreateProgram(quadVS, "#version 410 core\nvoid main() { undefined(); }\n")
	var ce *render.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, render.FragmentStage, ce.Stage)
	assert.NotEmpty(t, ce.Log)
}
