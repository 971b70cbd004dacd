// Package capture encodes rendered frames to a video file by piping raw
// RGBA frames into an ffmpeg process.
package capture

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// frames buffered between the render loop and the encoder
const numBuffers = 4

var ErrClosed = errors.New("capture: recorder is closed")

type Config struct {
	Width, Height int
	FPS           int
	OutputFile    string
	// Codec is "h264", "hevc" or an ffmpeg encoder name. Empty means h264.
	Codec      string
	FFmpegPath string
}

// Recorder feeds frames to ffmpeg. WriteFrame and Close must be called
// from one goroutine.
type Recorder struct {
	cfg       Config
	frameSize int
	frames    chan []byte
	done      chan error
	closed    bool
	err       error
	written   int
}

// NewRecorder starts ffmpeg writing cfg.OutputFile.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.OutputFile == "" {
		return nil, errors.New("capture: no output file")
	}
	in, out := Args(cfg)
	return newRecorder(cfg, func(r io.Reader) error {
		cmd := ffmpeg.Input("pipe:", in).
			Output(cfg.OutputFile, out).
			OverWriteOutput().WithInput(r).ErrorToStdOut()
		if cfg.FFmpegPath != "" {
			cmd = cmd.SetFfmpegPath(cfg.FFmpegPath)
		}
		return cmd.Run()
	})
}

func newRecorder(cfg Config, run func(io.Reader) error) (*Recorder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("capture: invalid format %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}
	r := &Recorder{
		cfg:       cfg,
		frameSize: cfg.Width * cfg.Height * 4,
		frames:    make(chan []byte, numBuffers),
		done:      make(chan error, 1),
	}
	go r.encode(run)
	log.Printf("Recording %dx%d@%d to %s", cfg.Width, cfg.Height, cfg.FPS, cfg.OutputFile)
	return r, nil
}

// encode is the consumer side of the frame channel.
func (r *Recorder) encode(run func(io.Reader) error) {
	pipeReader, pipeWriter := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		err := run(pipeReader)
		// unblock writes if ffmpeg exits early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for pix := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(pix); err != nil {
			writeErr = fmt.Errorf("failed to write frame to ffmpeg: %w", err)
		}
	}
	pipeWriter.Close()

	err := <-errc
	if err != nil {
		err = fmt.Errorf("ffmpeg failed: %w", err)
	} else {
		err = writeErr
	}
	r.done <- err
}

// WriteFrame queues one frame of bottom-up RGBA8 rows as returned by
// render.Device.ReadPixels. It blocks while the encoder is behind. The
// slice must not be modified after the call.
func (r *Recorder) WriteFrame(pix []byte) error {
	if r.closed {
		return ErrClosed
	}
	if len(pix) != r.frameSize {
		return fmt.Errorf("capture: frame is %d bytes, want %d", len(pix), r.frameSize)
	}
	r.frames <- pix
	r.written++
	return nil
}

// Frames returns the number of frames queued so far.
func (r *Recorder) Frames() int {
	return r.written
}

// Close flushes queued frames and waits for ffmpeg to exit.
func (r *Recorder) Close() error {
	if r.closed {
		return r.err
	}
	r.closed = true
	close(r.frames)
	r.err = <-r.done
	log.Printf("Recorded %d frames to %s", r.written, r.cfg.OutputFile)
	return r.err
}

// Args returns the ffmpeg input and output arguments for cfg.
func Args(cfg Config) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		// GL rows arrive bottom-up
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     encoderName(cfg.Codec, runtime.GOOS),
	}
	if cfg.Codec == "hevc" && strings.HasSuffix(cfg.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

func encoderName(codec, goos string) string {
	switch codec {
	case "", "h264":
		if goos == "darwin" {
			return "h264_videotoolbox"
		}
		return "libx264"
	case "hevc":
		if goos == "darwin" {
			return "hevc_videotoolbox"
		}
		return "libx265"
	}
	return codec
}
