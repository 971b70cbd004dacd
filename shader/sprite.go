// Package shader holds the built-in sprite program, WebGL2 GLSL
// translation for the native and web targets, and a file watcher for
// reloading shader sources.
package shader

import (
	"fmt"
	"os"

	"github.com/richinsley/glplatform/render"
)

// Sprite sources are written against WebGL2 and translated per target.
const SpriteVertexSource = `#version 300 es
in vec2 a_pos;
in vec2 a_uv;
in vec4 a_color;
uniform vec2 u_resolution;
out vec2 v_uv;
out vec4 v_color;
void main() {
    vec2 clip = a_pos / u_resolution * 2.0 - 1.0;
    gl_Position = vec4(clip.x, -clip.y, 0.0, 1.0);
    v_uv = a_uv;
    v_color = a_color;
}
`

const SpriteFragmentSource = `#version 300 es
precision mediump float;
in vec2 v_uv;
in vec4 v_color;
uniform sampler2D u_texture;
out vec4 fragColor;
void main() {
    fragColor = texture(u_texture, v_uv) * v_color;
}
`

// SpriteVertex matches SpriteVertexSource. Positions are in pixels with
// the origin at the top-left.
type SpriteVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color render.Color
}

func (SpriteVertex) Stride() int { return 32 }

func (SpriteVertex) Attributes() []render.Attribute {
	return []render.Attribute{
		{Name: "a_pos", Count: 2, Type: render.Float},
		{Name: "a_uv", Count: 2, Type: render.Float},
		{Name: "a_color", Count: 4, Type: render.Float},
	}
}

// Quad returns two triangles covering the pixel rectangle (x0,y0)-(x1,y1)
// with the whole texture mapped onto it.
func Quad(x0, y0, x1, y1 float32, color render.Color) []SpriteVertex {
	tl := SpriteVertex{Pos: [2]float32{x0, y0}, UV: [2]float32{0, 0}, Color: color}
	tr := SpriteVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{1, 0}, Color: color}
	bl := SpriteVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{0, 1}, Color: color}
	br := SpriteVertex{Pos: [2]float32{x1, y1}, UV: [2]float32{1, 1}, Color: color}
	return []SpriteVertex{tl, bl, br, tl, br, tr}
}

// LoadSources reads the vertex and fragment shader files. An empty path
// selects the matching built-in sprite source.
func LoadSources(vsPath, fsPath string) (vs, fs string, err error) {
	vs, fs = SpriteVertexSource, SpriteFragmentSource
	if vsPath != "" {
		b, err := os.ReadFile(vsPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read vertex shader: %w", err)
		}
		vs = string(b)
	}
	if fsPath != "" {
		b, err := os.ReadFile(fsPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read fragment shader: %w", err)
		}
		fs = string(b)
	}
	return vs, fs, nil
}
