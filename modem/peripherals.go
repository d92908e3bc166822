// Package modem wires the sinetab, dsp, bitsync, hdlc, and dds packages
// into a single AFSK1200 modem instance: the demodulator ISR entry
// point, the modulator ISR entry point, and the byte-stream facade
// that the AX.25 layer above uses to talk to it (spec.md §4.6, §6).
package modem

import "time"

// SampleSource is the ADC peripheral contract: something calls
// Modem.ADCSample(sample) at exactly SampleRate Hz. This interface
// exists only to document the contract; the modem does not poll it —
// the peripheral driver pushes samples in.
type SampleSource interface {
	// SampleRate is the fixed input sample rate the source delivers at.
	SampleRate() int
}

// SampleSink is the DAC peripheral contract: dac_irq_start/dac_irq_stop
// arm and disarm delivery of Modem.DACSample() calls at SampleRate Hz.
type SampleSink interface {
	SampleRate() int
	Start()
	Stop()
}

// Clock is the monotonic millisecond clock and relax/yield primitive
// the byte-stream facade uses for timeouts and busy-wait blocking
// (spec.md §4.6, §5).
type Clock interface {
	NowMS() int64
	Relax()
}

// SystemClock is the default Clock backed by the Go runtime: a
// monotonic millisecond clock and a short sleep as the relax hint. It
// is the off-device stand-in for whatever millisecond timer peripheral
// the target provides.
type SystemClock struct{}

func (SystemClock) NowMS() int64 {
	return time.Now().UnixMilli()
}

func (SystemClock) Relax() {
	time.Sleep(100 * time.Microsecond)
}
