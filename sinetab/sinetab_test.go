package sinetab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymmetry(t *testing.T) {
	for i := 0; i < WaveLen; i++ {
		got := int(Sample(i)) + int(Sample((i+256)%WaveLen))
		require.Equal(t, 255, got, "index %d", i)
	}
}

func TestRange(t *testing.T) {
	for i := 0; i < WaveLen; i++ {
		s := Sample(i)
		require.GreaterOrEqual(t, int(s), 0)
		require.LessOrEqual(t, int(s), 255)
	}
}

func TestZeroCrossings(t *testing.T) {
	// sin(0) == 0 -> centred at 128.
	require.Equal(t, uint8(128), Sample(0))
	require.Equal(t, uint8(127), Sample(256))
	// Quarter-period peak and trough.
	require.Equal(t, uint8(255), Sample(128))
	require.Equal(t, uint8(0), Sample(384))
}

func TestOutOfRangePanics(t *testing.T) {
	require.Panics(t, func() { Sample(-1) })
	require.Panics(t, func() { Sample(WaveLen) })
}
