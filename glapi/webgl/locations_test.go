package webgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationTableReusesName(t *testing.T) {
	tab := newLocationTable[string]()
	a := tab.add(1, "u_resolution", "loc-a")
	b := tab.add(1, "u_texture", "loc-b")
	assert.NotEqual(t, a, b)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a, tab.add(1, "u_resolution", "loc-a"))
	}
	assert.Equal(t, 2, tab.len())

	v, ok := tab.get(b)
	require.True(t, ok)
	assert.Equal(t, "loc-b", v)
}

func TestLocationTableReleaseProgram(t *testing.T) {
	tab := newLocationTable[string]()
	a := tab.add(1, "u_resolution", "a")
	other := tab.add(2, "u_resolution", "other")
	assert.NotEqual(t, a, other)

	tab.release(1)
	_, ok := tab.get(a)
	assert.False(t, ok)
	v, ok := tab.get(other)
	require.True(t, ok)
	assert.Equal(t, "other", v)
	assert.Equal(t, 1, tab.len())

	// Programs created and deleted in a loop leave nothing behind.
	for prog := uint32(10); prog < 110; prog++ {
		tab.add(prog, "u_resolution", "x")
		tab.add(prog, "u_texture", "y")
		tab.release(prog)
	}
	assert.Equal(t, 1, tab.len())
	assert.Empty(t, tab.owned[1])

	tab.release(99)
	assert.Equal(t, 1, tab.len())
}
