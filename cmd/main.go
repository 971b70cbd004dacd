//go:build !js

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/glplatform/capture"
	"github.com/richinsley/glplatform/glapi/glcore"
	"github.com/richinsley/glplatform/glfwcontext"
	"github.com/richinsley/glplatform/graphics"
	"github.com/richinsley/glplatform/headless"
	"github.com/richinsley/glplatform/options"
	"github.com/richinsley/glplatform/render"
	"github.com/richinsley/glplatform/shader"
	"github.com/richinsley/glplatform/window"
)

// larger images are scaled down on load
const maxImageSize = 2048

func init() {
	runtime.LockOSThread()
}

// pointer is the last cursor position reported by the window.
type pointer struct {
	x, y float32
	down bool
}

func newInputHandler(p *pointer) *window.InputHandler {
	h := &window.InputHandler{}
	h.SetMouseMove(func(x, y int) {
		p.x, p.y = float32(x), float32(y)
	})
	h.SetMouseDown(func(button int8, x, y int) {
		p.down = true
		log.Printf("mouse down: button %d at %d,%d", button, x, y)
	})
	h.SetMouseUp(func(button int8, x, y int) {
		p.down = false
		log.Printf("mouse up: button %d at %d,%d", button, x, y)
	})
	h.SetKeyDown(func(key int) {
		log.Printf("key down: %d", key)
	})
	return h
}

func checkerboard(size, cell int) *image.RGBA {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			} else {
				img.SetGray(x, y, color.Gray{Y: 64})
			}
		}
	}
	return render.ToRGBA(img)
}

func openContext(opts *options.Options, handler *window.InputHandler) (graphics.Context, func(), error) {
	if *opts.Mode == "headless" {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Shutdown, nil
	}
	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, err
	}
	c, err := glfwcontext.New(*opts.Width, *opts.Height, "glplatform", true, handler)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, err
	}
	c.MakeCurrent()
	return c, func() {
		c.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func loadProgram(d *render.Device, opts *options.Options) (*render.Program, error) {
	vs, fs, err := shader.LoadSources(*opts.VertexShader, *opts.FragmentShader)
	if err != nil {
		return nil, err
	}
	return shader.CreateProgram(d, vs, fs, shader.GLSL410)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(opts *options.Options) error {
	var p pointer
	ctx, shutdown, err := openContext(opts, newInputHandler(&p))
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	defer shutdown()

	f, err := glcore.Init()
	if err != nil {
		return err
	}
	d, err := render.NewDevice(f, ctx)
	if err != nil {
		return err
	}

	filter := render.Linear
	if *opts.Filter == "nearest" {
		filter = render.Nearest
	}
	img := checkerboard(64, 8)
	if *opts.Image != "" {
		if img, err = render.LoadImage(*opts.Image, maxImageSize); err != nil {
			return err
		}
	}
	size := img.Bounds().Size()
	tex, err := d.CreateTexture(size.X, size.Y, filter)
	if err != nil {
		return err
	}
	defer tex.Destroy()
	if err := tex.SetRegion(img, image.Point{}); err != nil {
		return err
	}

	prog, err := loadProgram(d, opts)
	if err != nil {
		return err
	}
	defer func() { prog.Destroy() }()

	vb, err := d.CreateVertexBuffer()
	if err != nil {
		return err
	}
	defer vb.Destroy()

	var changed <-chan string
	if *opts.Watch {
		w, err := shader.NewWatcher(*opts.VertexShader, *opts.FragmentShader)
		if err != nil {
			return err
		}
		defer w.Close()
		changed = w.Changed()
	}

	var rec *capture.Recorder
	var recW, recH int
	if *opts.OutputFile != "" {
		recW, recH, err = d.FitViewport()
		if err != nil {
			return err
		}
		rec, err = capture.NewRecorder(capture.Config{
			Width:      recW,
			Height:     recH,
			FPS:        *opts.FPS,
			OutputFile: *opts.OutputFile,
			Codec:      *opts.Codec,
			FFmpegPath: *opts.FFmpegPath,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Recording failed: %v", err)
			}
		}()
	}

	frames := *opts.Frames
	if *opts.Mode == "headless" && frames == 0 {
		frames = 1
	}
	white := render.Color{R: 1, G: 1, B: 1, A: 1}
	tint := render.Color{R: 1, G: 0.6, B: 0.25, A: 1}

	for frame := 0; !ctx.ShouldClose() && (frames == 0 || frame < frames); frame++ {
		select {
		case path := <-changed:
			log.Printf("Reloading shaders after change to %s", path)
			next, err := loadProgram(d, opts)
			if err != nil {
				log.Printf("Keeping previous program: %v", err)
				break
			}
			prog.Destroy()
			prog = next
		default:
		}

		w, h, err := d.FitViewport()
		if err != nil {
			return err
		}
		if err := d.Clear(&render.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}); err != nil {
			return err
		}

		prog.ClearUniforms()
		prog.SetUniform("u_resolution", render.Vec2{X: float32(w), Y: float32(h)})
		prog.SetUniform("u_texture", render.Sampler{Texture: tex})

		quad := shader.Quad(0, 0, float32(w), float32(h), white)
		cursor := white
		if p.down {
			cursor = tint
		}
		quad = append(quad, shader.Quad(p.x-32, p.y-32, p.x+32, p.y+32, cursor)...)
		if err := render.RenderVertices(vb, prog, quad); err != nil {
			return err
		}

		if rec != nil && (w != recW || h != recH) {
			log.Printf("Skipping frame %d: framebuffer is %dx%d, recording is %dx%d", frame, w, h, recW, recH)
		} else if rec != nil {
			pix, err := d.ReadPixels(image.Rect(0, 0, w, h))
			if err != nil {
				return err
			}
			if err := rec.WriteFrame(pix); err != nil {
				return err
			}
		}
		if *opts.Screenshot != "" && frame == frames-1 {
			shot, err := d.ReadImage(image.Rect(0, 0, w, h))
			if err != nil {
				return err
			}
			if err := writePNG(*opts.Screenshot, shot); err != nil {
				return fmt.Errorf("failed to write screenshot: %w", err)
			}
			log.Printf("Wrote %s", *opts.Screenshot)
		}
		ctx.EndFrame()
	}
	return nil
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if *opts.Help {
		fmt.Println("glplatform sprite demo")
		flag.PrintDefaults()
		return
	}
	if err := run(opts); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}
