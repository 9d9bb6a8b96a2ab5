package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFixed(t *testing.T) {
	rq := NewRingQueue[int](2)
	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	assert.ErrorIs(t, rq.Enqueue(3), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, rq.Enqueue(3))

	var got []int
	for !rq.IsEmpty() {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3}, got)

	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueueGrowKeepsOrder(t *testing.T) {
	rq := NewGrowableRingQueue[uint32](2)
	// wrap the indices before growing
	require.NoError(t, rq.Enqueue(1))
	_, _ = rq.Dequeue()
	for i := uint32(2); i <= 9; i++ {
		require.NoError(t, rq.Enqueue(i))
	}
	assert.Equal(t, 8, rq.Len())

	for want := uint32(2); want <= 9; want++ {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestRingQueueClear(t *testing.T) {
	rq := NewGrowableRingQueue[string](4)
	_ = rq.Enqueue("a")
	_ = rq.Enqueue("b")
	rq.Clear()
	assert.True(t, rq.IsEmpty())
	require.NoError(t, rq.Enqueue("c"))
	v, _ := rq.Peek()
	assert.Equal(t, "c", v)
}
