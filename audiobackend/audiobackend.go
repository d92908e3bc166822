// Package audiobackend provides SampleSource/SampleSink peripheral
// drivers for the modem package, replacing the teacher's ALSA-backed
// audio_open/audio_get_real/audio_put_real device (src/audio.go) with
// a deterministic in-memory backend for testing and a PortAudio-backed
// one for running against real hardware.
package audiobackend

import (
	"sync"
	"time"
)

// Recorder is a SampleSink that captures every DAC sample written to
// it into an in-memory buffer, for driving deterministic modulator
// tests without real audio hardware.
type Recorder struct {
	rate    int
	mu      sync.Mutex
	samples []uint8
	started int
	stopped int
}

// NewRecorder returns a Recorder reporting rate as its sample rate.
func NewRecorder(rate int) *Recorder {
	return &Recorder{rate: rate}
}

func (r *Recorder) SampleRate() int { return r.rate }

func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped++
}

// Push records a DAC sample, mirroring the teacher's outbuf ring
// filled one sample at a time by audio_put_real.
func (r *Recorder) Push(sample uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, sample)
}

// Samples returns a copy of every sample recorded so far.
func (r *Recorder) Samples() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint8, len(r.samples))
	copy(out, r.samples)
	return out
}

// Starts reports how many times Start was called.
func (r *Recorder) Starts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Stops reports how many times Stop was called.
func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Player is a SampleSource stand-in that replays a fixed slice of
// signed 8-bit ADC samples, the input-side analogue of Recorder, for
// feeding canned waveforms (e.g. captured off-air audio) through the
// demodulator in tests.
type Player struct {
	rate    int
	samples []int8
}

// NewPlayer returns a Player that will yield samples in order.
func NewPlayer(rate int, samples []int8) *Player {
	cp := make([]int8, len(samples))
	copy(cp, samples)
	return &Player{rate: rate, samples: cp}
}

func (p *Player) SampleRate() int { return p.rate }

// Next returns the next sample and true, or (0, false) once exhausted.
func (p *Player) Next() (int8, bool) {
	if len(p.samples) == 0 {
		return 0, false
	}
	s := p.samples[0]
	p.samples = p.samples[1:]
	return s, true
}

// Loopback drives the ADC and DAC peripheral interrupts in lockstep at
// a single shared rate, recording every DAC sample into rec and feeding
// it straight back in as the next ADC sample: a software stand-in for a
// patch cable between a transceiver's speaker and microphone jacks,
// useful for exercising the whole modem core without a radio attached.
// It only makes sense when the ADC and DAC run at the same rate — the
// core never resamples (spec.md §1 Non-goals) — so callers must not use
// it when the configured DAC rate differs from the fixed 9600 Hz ADC
// rate; use Drive and Silence separately instead.
func Loopback(rate int, rec *Recorder, dac func() uint8, adc func(int8)) {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	for range ticker.C {
		s := dac()
		rec.Push(s)
		adc(int8(int(s) - 128))
	}
}

// Drive pulls one DAC sample per tick at rate Hz and records it into
// rec, without feeding anything back to the ADC — the transmit-only
// half of Loopback, for configurations where the DAC runs at a rate
// other than the ADC's fixed 9600 Hz.
func Drive(rate int, rec *Recorder, dac func() uint8) {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	for range ticker.C {
		rec.Push(dac())
	}
}

// Silence feeds a constant zero-level sample into the ADC ISR at rate
// Hz forever — the receive-only half of Loopback, for configurations
// where no matching-rate signal is available to feed back.
func Silence(rate int, adc func(int8)) {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	for range ticker.C {
		adc(0)
	}
}
