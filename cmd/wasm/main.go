//go:build js && wasm

package main

import (
	"image"
	"image/color"
	"log"

	"github.com/richinsley/glplatform/render"
	"github.com/richinsley/glplatform/shader"
	"github.com/richinsley/glplatform/window"
)

func main() {
	var px, py float32
	h := &window.InputHandler{}
	h.SetMouseMove(func(x, y int) { px, py = float32(x), float32(y) })
	h.SetKeyDown(func(key int) { log.Printf("key down: %d", key) })

	w, err := window.CreateCanvasWindow("canvas", h)
	if err != nil {
		log.Fatal(err)
	}
	ctx, err := window.GetWindowContext(w)
	if err != nil {
		log.Fatal(err)
	}
	window.SetCurrentContext(ctx)
	defer ctx.Shutdown()

	f, err := ctx.Functions()
	if err != nil {
		log.Fatal(err)
	}
	d, err := render.NewDevice(f, ctx)
	if err != nil {
		log.Fatal(err)
	}

	// the sprite sources are already WebGL2
	prog, err := d.CreateProgram(shader.SpriteVertexSource, shader.SpriteFragmentSource)
	if err != nil {
		log.Fatal(err)
	}
	defer prog.Destroy()

	tex, err := d.CreateTexture(2, 2, render.Nearest)
	if err != nil {
		log.Fatal(err)
	}
	defer tex.Destroy()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{80, 80, 80, 255})
	img.SetRGBA(0, 1, color.RGBA{80, 80, 80, 255})
	if err := tex.SetRegion(img, image.Point{}); err != nil {
		log.Fatal(err)
	}

	vb, err := d.CreateVertexBuffer()
	if err != nil {
		log.Fatal(err)
	}
	defer vb.Destroy()

	white := render.Color{R: 1, G: 1, B: 1, A: 1}
	for !ctx.ShouldClose() {
		sw, sh, err := d.FitViewport()
		if err != nil {
			log.Fatal(err)
		}
		if err := d.Clear(nil); err != nil {
			log.Fatal(err)
		}

		prog.ClearUniforms()
		prog.SetUniform("u_resolution", render.Vec2{X: float32(sw), Y: float32(sh)})
		prog.SetUniform("u_texture", render.Sampler{Texture: tex})
		if err := render.RenderVertices(vb, prog, shader.Quad(px-32, py-32, px+32, py+32, white)); err != nil {
			log.Fatal(err)
		}
		ctx.EndFrame()
	}
}
