package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDPoolNeverHandsOutZero(t *testing.T) {
	p := NewIDPool()
	for i := 0; i < 5; i++ {
		assert.NotZero(t, p.Acquire(i))
	}
	assert.Equal(t, 5, p.Live())
}

func TestIDPoolRecyclesLowestFree(t *testing.T) {
	p := NewIDPool()
	a := p.Acquire("a")
	b := p.Acquire("b")
	c := p.Acquire("c")
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{a, b, c})

	require.NoError(t, p.Release(b))
	assert.Equal(t, b, p.Acquire("d"))

	owner, ok := p.Owner(b)
	require.True(t, ok)
	assert.Equal(t, "d", owner)
}

func TestIDPoolReleaseErrors(t *testing.T) {
	p := NewIDPool()
	assert.Error(t, p.Release(0))
	assert.Error(t, p.Release(7))

	id := p.Acquire(nil)
	require.NoError(t, p.Release(id))
	assert.Error(t, p.Release(id), "double release must be reported")

	_, ok := p.Owner(id)
	assert.False(t, ok)
}

func TestIDPoolInUse(t *testing.T) {
	p := NewIDPool()
	assert.Empty(t, p.InUse())
	for i := 0; i < 4; i++ {
		p.Acquire(i)
	}
	require.NoError(t, p.Release(2))
	assert.Equal(t, []uint32{1, 3, 4}, p.InUse())
}
