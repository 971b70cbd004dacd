package shader

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/richinsley/glplatform/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpriteVertexLayout(t *testing.T) {
	var v SpriteVertex
	assert.Equal(t, int(unsafe.Sizeof(v)), v.Stride())

	offsets, err := render.Offsets(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8, 16}, offsets)
	assert.Equal(t, int(unsafe.Offsetof(v.UV)), offsets[1])
	assert.Equal(t, int(unsafe.Offsetof(v.Color)), offsets[2])
}

func TestQuad(t *testing.T) {
	c := render.Color{R: 1, G: 0.5, B: 0.25, A: 1}
	q := Quad(10, 20, 30, 40, c)
	require.Len(t, q, 6)
	for _, v := range q {
		assert.Equal(t, c, v.Color)
		assert.Contains(t, []float32{10, 30}, v.Pos[0])
		assert.Contains(t, []float32{20, 40}, v.Pos[1])
		assert.Equal(t, v.Pos[0] == 30, v.UV[0] == 1)
		assert.Equal(t, v.Pos[1] == 40, v.UV[1] == 1)
	}
}

func TestLoadSources(t *testing.T) {
	vs, fs, err := LoadSources("", "")
	require.NoError(t, err)
	assert.Equal(t, SpriteVertexSource, vs)
	assert.Equal(t, SpriteFragmentSource, fs)

	path := filepath.Join(t.TempDir(), "custom.frag")
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o644))
	vs, fs, err = LoadSources("", path)
	require.NoError(t, err)
	assert.Equal(t, SpriteVertexSource, vs)
	assert.Equal(t, "custom", fs)

	_, _, err = LoadSources(filepath.Join(t.TempDir(), "missing.vert"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
