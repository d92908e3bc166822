package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	q := NewBytes(4)
	require.True(t, q.TryPush(1))
	require.True(t, q.TryPush(2))
	require.True(t, q.TryPush(3))

	b, ok := q.TryPop()
	require.True(t, ok)
	require.Equal(t, byte(1), b)

	b, ok = q.TryPop()
	require.True(t, ok)
	require.Equal(t, byte(2), b)
}

func TestFullRejectsPush(t *testing.T) {
	q := NewBytes(2)
	require.True(t, q.TryPush(1))
	require.True(t, q.TryPush(2))
	require.False(t, q.TryPush(3))
	require.Equal(t, 2, q.Len())
}

func TestEmptyPopFails(t *testing.T) {
	q := NewBytes(2)
	_, ok := q.TryPop()
	require.False(t, ok)
	require.True(t, q.Empty())
}

func TestWraparound(t *testing.T) {
	q := NewBytes(3)
	for round := 0; round < 100; round++ {
		require.True(t, q.TryPush(byte(round)))
		require.True(t, q.TryPush(byte(round+1)))
		b, ok := q.TryPop()
		require.True(t, ok)
		require.Equal(t, byte(round), b)
		b, ok = q.TryPop()
		require.True(t, ok)
		require.Equal(t, byte(round+1), b)
	}
}

func TestCap(t *testing.T) {
	q := NewBytes(7)
	require.Equal(t, 7, q.Cap())
}
