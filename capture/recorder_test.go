package capture

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func TestArgs(t *testing.T) {
	in, out := Args(Config{Width: 320, Height: 200, FPS: 30, OutputFile: "out.mp4", Codec: "hevc"})
	assert.Equal(t, ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         "320x200",
		"framerate": 30,
	}, in)
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "hvc1", out["tag:v"])

	_, out = Args(Config{Width: 1, Height: 1, FPS: 1, OutputFile: "out.mkv", Codec: "hevc"})
	assert.NotContains(t, out, "tag:v")
}

func TestEncoderName(t *testing.T) {
	assert.Equal(t, "libx264", encoderName("", "linux"))
	assert.Equal(t, "h264_videotoolbox", encoderName("h264", "darwin"))
	assert.Equal(t, "libx265", encoderName("hevc", "windows"))
	assert.Equal(t, "hevc_videotoolbox", encoderName("hevc", "darwin"))
	assert.Equal(t, "libvpx-vp9", encoderName("libvpx-vp9", "linux"))
}

func TestRecorderPipesFrames(t *testing.T) {
	var got bytes.Buffer
	r, err := newRecorder(Config{Width: 2, Height: 1, FPS: 60, OutputFile: "mem"}, func(in io.Reader) error {
		_, err := io.Copy(&got, in)
		return err
	})
	require.NoError(t, err)

	require.NoError(t, r.WriteFrame([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, r.WriteFrame(bytes.Repeat([]byte{9}, 8)))
	assert.Error(t, r.WriteFrame([]byte{1, 2, 3}))
	assert.Equal(t, 2, r.Frames())

	require.NoError(t, r.Close())
	assert.Equal(t, append([]byte{1, 2, 3, 4, 5, 6, 7, 8}, bytes.Repeat([]byte{9}, 8)...), got.Bytes())

	assert.ErrorIs(t, r.WriteFrame(make([]byte, 8)), ErrClosed)
	assert.NoError(t, r.Close())
}

func TestRecorderReportsEncoderFailure(t *testing.T) {
	boom := errors.New("boom")
	r, err := newRecorder(Config{Width: 1, Height: 1, FPS: 1, OutputFile: "mem"}, func(in io.Reader) error {
		return boom
	})
	require.NoError(t, err)

	for i := 0; i < numBuffers*2; i++ {
		require.NoError(t, r.WriteFrame(make([]byte, 4)))
	}
	err = r.Close()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.Close(), boom)
}

func TestNewRecorderValidates(t *testing.T) {
	_, err := NewRecorder(Config{Width: 1, Height: 1, FPS: 1})
	assert.Error(t, err)
	_, err = newRecorder(Config{Width: 0, Height: 1, FPS: 1}, nil)
	assert.Error(t, err)
}
