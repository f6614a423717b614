package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueue_FIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	require.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	head, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, head)

	for want := 1; want <= 3; want++ {
		got, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueue_WrapAround(t *testing.T) {
	rq := NewRingQueue[string](2)

	require.NoError(t, rq.Enqueue("a"))
	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// Write index wraps past the end of the backing array.
	require.NoError(t, rq.Enqueue("b"))
	require.NoError(t, rq.Enqueue("c"))
	assert.Equal(t, 2, rq.Len())

	v, _ = rq.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = rq.Dequeue()
	assert.Equal(t, "c", v)
}

func TestRingQueue_Drain(t *testing.T) {
	rq := NewRingQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, rq.Enqueue(i))
	}

	var got []int
	rq.Drain(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{0, 1, 2, 3}, got)
	assert.True(t, rq.IsEmpty())
}
