// Package dds implements the direct-digital-synthesis tone generator
// and the transmit sequencer that drives it: preamble/payload/trailer
// scheduling, live bit stuffing, and NRZI encoding, one output sample
// per call from the DAC conversion interrupt (spec.md §4.5).
package dds

import (
	"math"
	"sync/atomic"

	"github.com/n5bia/afsk1200/hdlc"
	"github.com/n5bia/afsk1200/sinetab"
)

const (
	bitRate      = 1200
	stuffRunLen  = 5
	phaseModulus = sinetab.WaveLen
)

// MarkSpaceIncrements computes the DDS phase increments for the mark
// (1200 Hz) and space (2200 Hz) tones at the given DAC sample rate.
// sampleRate must be an integer multiple of bitRate (spec.md §3). This
// is an initialisation-time computation only; nothing on the hot path
// touches floating point.
func MarkSpaceIncrements(sampleRate int) (mark, space uint16) {
	mark = uint16(math.Round(float64(phaseModulus) * 1200.0 / float64(sampleRate)))
	space = uint16(math.Round(float64(phaseModulus) * 2200.0 / float64(sampleRate)))
	return mark, space
}

// TxQueue is the transmit byte queue as seen by the sequencer.
type TxQueue interface {
	TryPop() (byte, bool)
	Empty() bool
}

// Sequencer owns the modulator/transmit-sequencer state of spec.md §3.
// Exactly one ISR (the DAC interrupt) calls DACSample; foreground calls
// TxStart and reads Sending.
type Sequencer struct {
	MarkInc          uint16
	SpaceInc         uint16
	DACSamplesPerBit int

	// Enable and Disable arm/disarm delivery of the DAC interrupt
	// (dac_irq_start/dac_irq_stop in spec.md §6). Either may be nil in
	// tests that don't care about peripheral state.
	Enable  func()
	Disable func()

	phaseAcc    uint16
	phaseInc    uint16
	sampleCount int
	txBit       byte
	currOut     byte
	bitStuff    bool
	stuffCnt    int
	preambleLen int

	sending    atomic.Bool
	trailerLen atomic.Int32
}

// Sending reports whether the DAC interrupt is currently active.
func (s *Sequencer) Sending() bool {
	return s.sending.Load()
}

// TxStart arms the sequencer for transmission. If it is not already
// sending, it initialises phase/stuffing state, computes the preamble
// length, and enables the DAC interrupt. Every call — including
// re-entrant ones while already sending — refreshes the trailer length
// so new data extends an active transmission (spec.md §4.5).
func (s *Sequencer) TxStart(preambleMS, trailerMS int) {
	if !s.sending.Load() {
		s.phaseInc = s.MarkInc
		s.phaseAcc = 0
		s.stuffCnt = 0
		s.txBit = 0
		s.bitStuff = false
		s.preambleLen = ceilMS(preambleMS)
		s.sending.Store(true)
		if s.Enable != nil {
			s.Enable()
		}
	}
	s.trailerLen.Store(int32(ceilMS(trailerMS)))
}

// ceilMS converts a millisecond duration into a whole number of flag
// bytes at bitRate, rounding up: ceil(ms * bitRate / 8000).
func ceilMS(ms int) int {
	return (ms*bitRate + 7999) / 8000
}

func (s *Sequencer) togglePhase() {
	if s.phaseInc == s.MarkInc {
		s.phaseInc = s.SpaceInc
	} else {
		s.phaseInc = s.MarkInc
	}
}

// stop disarms the DAC interrupt and marks transmission idle.
func (s *Sequencer) stop() uint8 {
	if s.Disable != nil {
		s.Disable()
	}
	s.sending.Store(false)
	return 0
}

// DACSample returns the next 8-bit audio sample. It is called once per
// DAC sample from the DAC conversion interrupt.
func (s *Sequencer) DACSample(tx TxQueue) uint8 {
	if s.sampleCount == 0 {
		if s.txBit == 0 {
			if tx.Empty() && s.trailerLen.Load() == 0 {
				return s.stop()
			}

			if !s.bitStuff {
				s.stuffCnt = 0
			}
			s.bitStuff = true

			switch {
			case s.preambleLen > 0:
				s.preambleLen--
				s.currOut = hdlc.Flag
			case tx.Empty():
				s.trailerLen.Add(-1)
				s.currOut = hdlc.Flag
			default:
				b, _ := tx.TryPop()
				s.currOut = b
			}

			if s.currOut == hdlc.Esc {
				b, ok := tx.TryPop()
				if !ok {
					return s.stop()
				}
				s.currOut = b
			} else if s.currOut == hdlc.Flag || s.currOut == hdlc.Reset {
				s.bitStuff = false
			}

			s.txBit = 0x01
		}

		if s.bitStuff && s.stuffCnt >= stuffRunLen {
			s.togglePhase()
			s.stuffCnt = 0
		} else {
			if s.currOut&s.txBit != 0 {
				s.stuffCnt++
			} else {
				s.togglePhase()
				s.stuffCnt = 0
			}
			s.txBit <<= 1
		}

		s.sampleCount = s.DACSamplesPerBit
	}

	s.phaseAcc = uint16((int(s.phaseAcc) + int(s.phaseInc)) % phaseModulus)
	s.sampleCount--
	return sinetab.Sample(int(s.phaseAcc))
}
