package modem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeClock is a manually-advanced Clock for deterministic timeout tests.
type fakeClock struct {
	ms int64
}

func (c *fakeClock) NowMS() int64 { return c.ms }
func (c *fakeClock) Relax()       { c.ms++ }

type fakeSink struct {
	starts, stops int
}

func (s *fakeSink) SampleRate() int { return 9600 }
func (s *fakeSink) Start()          { s.starts++ }
func (s *fakeSink) Stop()           { s.stops++ }

func testConfig() Config {
	return Config{
		DACSampleRate: 9600,
		PreambleMS:    0,
		TrailerMS:     0,
		RXTimeoutMS:   0,
		RXQueueLen:    64,
		TXQueueLen:    64,
	}
}

func TestNewRejectsBadSampleRate(t *testing.T) {
	require.Panics(t, func() {
		New(Config{DACSampleRate: 9601, RXQueueLen: 1, TXQueueLen: 1}, nil, SystemClock{})
	})
}

func TestNonBlockingReadReturnsWhatIsAvailable(t *testing.T) {
	m := New(testConfig(), &fakeSink{}, &fakeClock{})
	buf := make([]byte, 8)
	n := m.Read(buf)
	require.Equal(t, 0, n)
}

func TestPositiveTimeoutReadExpires(t *testing.T) {
	cfg := testConfig()
	cfg.RXTimeoutMS = 5
	clock := &fakeClock{}
	m := New(cfg, &fakeSink{}, clock)

	buf := make([]byte, 8)
	n := m.Read(buf)
	require.Equal(t, 0, n)
	require.GreaterOrEqual(t, clock.ms, int64(5))
}

func TestErrorAndClearError(t *testing.T) {
	m := New(testConfig(), &fakeSink{}, &fakeClock{})
	require.Equal(t, uint32(0), m.Error())
	m.status.set(StatusRXFIFOOverrun)
	require.Equal(t, StatusRXFIFOOverrun, m.Error())
	m.ClearError()
	require.Equal(t, uint32(0), m.Error())
}

// TestEndToEndWriteThenFlushStopsDACExactlyOnce exercises scenario 6 of
// spec.md §8: write 100 bytes, flush, and check the DAC interrupt was
// stopped exactly once since the write began.
func TestEndToEndWriteThenFlushStopsDACExactlyOnce(t *testing.T) {
	sink := &fakeSink{}
	cfg := testConfig()
	cfg.TXQueueLen = 256 // must exceed the payload: nothing drains tx_fifo until DACSample runs below.
	m := New(cfg, sink, &fakeClock{})

	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}
	n := m.Write(payload)
	require.Equal(t, 100, n)
	require.True(t, m.seq.Sending())
	require.Equal(t, 1, sink.starts)

	// Drive the DAC ISR until the sequencer goes idle on its own.
	for i := 0; i < 1_000_000 && m.seq.Sending(); i++ {
		m.DACSample()
	}

	require.False(t, m.seq.Sending())
	m.Flush()
	require.Equal(t, 1, sink.stops)
}

// TestEndToEndLoopbackAtInfiniteSNR feeds the modulator's own DAC
// samples straight back into the demodulator's ADC input (the infinite
// signal-to-noise-ratio case of spec.md §8) and checks the original
// byte sequence is recovered.
func TestEndToEndLoopbackAtInfiniteSNR(t *testing.T) {
	sink := &fakeSink{}
	cfg := testConfig()
	cfg.PreambleMS = 20
	cfg.TrailerMS = 20
	tx := New(cfg, sink, &fakeClock{})
	rx := New(cfg, &fakeSink{}, &fakeClock{})

	payload := []byte("HELLO, PACKET RADIO")
	tx.Write(payload)

	for i := 0; i < 20_000; i++ {
		sample := tx.DACSample()
		rx.ADCSample(int8(int(sample) - 128))
		if !tx.seq.Sending() && i > 100 {
			break
		}
	}
	tx.Flush()

	got := make([]byte, 256)
	n := rx.Read(got)
	got = got[:n]

	// The stream is bracketed with flags and may contain escapes; the
	// payload itself (none of these bytes need escaping) must appear
	// intact somewhere in the decoded stream.
	require.Contains(t, string(got), string(payload))
}
