package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleDelayPreFilledWithZero(t *testing.T) {
	var d SampleDelay
	for i := 0; i < DelayLen; i++ {
		require.Equal(t, int8(0), d.Push(int8(i+1)))
	}
	// After DelayLen pushes the original zeros have all come back out,
	// and the line is still exactly DelayLen deep.
	require.Equal(t, int8(1), d.Push(5))
}

func TestDiscriminateScaling(t *testing.T) {
	require.Equal(t, int16(0), Discriminate(0, 0))
	require.Equal(t, int16(25), Discriminate(10, 10)) // (10*10)>>2 = 25
	require.Equal(t, int16(-25), Discriminate(-10, 10))
}

func TestButterworthStep(t *testing.T) {
	var f Butterworth
	got := f.Step(100)
	require.Equal(t, int16(100), got) // x0=0,x1=100,y0=0 -> 0+100+0
	got = f.Step(100)
	// x0=100,x1=100,y0=100 -> 200 + 50 + 12 + 3 = 265
	require.Equal(t, int16(265), got)
}

func TestChebyshevStep(t *testing.T) {
	var f Chebyshev
	got := f.Step(100)
	require.Equal(t, int16(100), got)
	got = f.Step(100)
	require.Equal(t, int16(250), got) // 100+100+50
}

func TestNewFilterPanicsOnUnknownProfile(t *testing.T) {
	require.Panics(t, func() { NewFilter(Profile(99)) })
}
