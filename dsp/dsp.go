// Package dsp implements the receive-side discriminator: the fixed
// sample delay line and the two selectable first-order IIR low-pass
// filters used to clean up the discriminator's output.
//
// Every operation here is integer, fixed-point, and allocation-free —
// it runs once per ADC sample from interrupt context (spec.md §4.2).
// Nothing in this package may be rewritten in floating point; the
// shift-based coefficients are chosen to reproduce a specific bit-exact
// behaviour on recorded test vectors, not to approximate it.
package dsp

// SamplesPerBit is fixed by the 9600 Hz sample rate and 1200 baud rate.
const SamplesPerBit = 8

// DelayLen is the capacity of the discriminator's sample delay line.
const DelayLen = SamplesPerBit / 2

// SampleDelay is a fixed-capacity ring holding the last DelayLen raw
// ADC samples, pre-filled with zeros so the discriminator can run from
// sample 0 (spec.md §3, §4.2).
type SampleDelay struct {
	buf  [DelayLen]int8
	head int
}

// Push pops the oldest sample out of the delay line, pushes x in behind
// it, and returns the popped sample. The line always holds exactly
// DelayLen samples; it is never empty.
func (d *SampleDelay) Push(x int8) (oldest int8) {
	oldest = d.buf[d.head]
	d.buf[d.head] = x
	d.head++
	if d.head == DelayLen {
		d.head = 0
	}
	return oldest
}

// Discriminate computes the raw frequency-discriminator output for one
// sample: the delayed sample multiplied by the current one, scaled down
// by two bits. Both inputs are signed 8-bit audio samples; the product
// fits comfortably in 16 bits.
func Discriminate(delayed, current int8) int16 {
	return int16(int16(delayed)*int16(current)) >> 2
}

// Filter is a single first-order low-pass IIR step. Implementations
// hold their own x/y history and are not safe for concurrent use —
// each demodulator instance owns exactly one.
type Filter interface {
	// Step advances the filter by one discriminator sample and returns
	// the new output, iir_y[1].
	Step(raw int16) int16
}

// Butterworth approximates y[n] = x[n-1] + x[n] + 0.668*y[n-1] using
// >>1 + >>3 + >>5 in place of the 0.668 coefficient.
type Butterworth struct {
	x [2]int16
	y [2]int16
}

func (f *Butterworth) Step(raw int16) int16 {
	f.x[0] = f.x[1]
	f.x[1] = raw
	f.y[0] = f.y[1]
	f.y[1] = f.x[0] + f.x[1] + (f.y[0] >> 1) + (f.y[0] >> 3) + (f.y[0] >> 5)
	return f.y[1]
}

// Chebyshev approximates y[n] = x[n-1] + x[n] + 0.438*y[n-1] using >>1
// in place of the 0.438 coefficient.
type Chebyshev struct {
	x [2]int16
	y [2]int16
}

func (f *Chebyshev) Step(raw int16) int16 {
	f.x[0] = f.x[1]
	f.x[1] = raw
	f.y[0] = f.y[1]
	f.y[1] = f.x[0] + f.x[1] + (f.y[0] >> 1)
	return f.y[1]
}

// Profile selects which IIR variant a demodulator instance uses. It is
// fixed at instance construction time, never branched on per sample.
type Profile int

const (
	ProfileButterworth Profile = iota
	ProfileChebyshev
)

// NewFilter builds the Filter implementation for the given profile.
// An unrecognised profile is a contract violation (spec.md §7) and
// panics rather than silently defaulting.
func NewFilter(p Profile) Filter {
	switch p {
	case ProfileButterworth:
		return &Butterworth{}
	case ProfileChebyshev:
		return &Chebyshev{}
	default:
		panic("dsp: unsupported filter profile")
	}
}
