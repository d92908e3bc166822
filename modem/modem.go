package modem

import (
	"github.com/n5bia/afsk1200/bitsync"
	"github.com/n5bia/afsk1200/dds"
	"github.com/n5bia/afsk1200/dsp"
	"github.com/n5bia/afsk1200/hdlc"
	"github.com/n5bia/afsk1200/queue"
)

// Status flag bits (spec.md §3, §7). RXFIFOOverrun is the only one the
// core ever produces.
const (
	StatusRXFIFOOverrun uint32 = 1 << iota
)

const bitRate = 1200

// Config carries the §6 configuration parameters.
type Config struct {
	// DACSampleRate must be an integer multiple of 1200.
	DACSampleRate int
	PreambleMS    int
	TrailerMS     int
	// RXTimeoutMS: 0 = non-blocking, -1 = block indefinitely, positive
	// = block up to that many milliseconds since the read attempt began.
	RXTimeoutMS int
	Filter      dsp.Profile
	RXQueueLen  int
	TXQueueLen  int
}

// Modem is the single owning instance of all modem state: created once
// at initialisation, configured, and never reallocated. The ADC
// interrupt touches only the demodulator fields; the DAC interrupt
// touches only the sequencer; foreground touches only the queues and
// status mask (spec.md §5).
type Modem struct {
	cfg Config

	// Demodulator state — ADC interrupt only.
	delay   dsp.SampleDelay
	filter  dsp.Filter
	sampler bitsync.Sampler
	hdlcRx  hdlc.Receiver

	// Modulator/sequencer state — DAC interrupt only (trailer length
	// and Sending() are the sole cross-context exceptions, both handled
	// internally by dds.Sequencer).
	seq dds.Sequencer

	rxQ *queue.Bytes
	txQ *queue.Bytes

	status atomicStatus
	clock  Clock
}

// New builds a Modem instance from cfg, wiring the DAC enable/disable
// calls to sink (which may be nil in tests that never call TxStart)
// and the facade's blocking timeouts to clock.
func New(cfg Config, sink SampleSink, clock Clock) *Modem {
	if cfg.DACSampleRate%bitRate != 0 {
		panic("modem: DACSampleRate must be a multiple of 1200")
	}

	mark, space := dds.MarkSpaceIncrements(cfg.DACSampleRate)

	m := &Modem{
		cfg:    cfg,
		filter: dsp.NewFilter(cfg.Filter),
		rxQ:    queue.NewBytes(cfg.RXQueueLen),
		txQ:    queue.NewBytes(cfg.TXQueueLen),
		clock:  clock,
	}

	m.seq.MarkInc = mark
	m.seq.SpaceInc = space
	m.seq.DACSamplesPerBit = cfg.DACSampleRate / bitRate
	if sink != nil {
		m.seq.Enable = sink.Start
		m.seq.Disable = sink.Stop
	}

	return m
}

// ADCSample is the ADC interrupt entry point: afsk_adc_isr in spec.md
// §6. It must be called at exactly 9600 Hz with a signed 8-bit sample.
func (m *Modem) ADCSample(sample int8) {
	delayed := m.delay.Push(sample)
	raw := dsp.Discriminate(delayed, sample)
	filtered := m.filter.Step(raw)

	bit, ok := m.sampler.Step(filtered > 0)
	if !ok {
		return
	}

	if !m.hdlcRx.Bit(bit, m.rxQ) {
		m.status.set(StatusRXFIFOOverrun)
	}
}

// DACSample is the DAC interrupt entry point: afsk_dac_isr in spec.md
// §6. It must be called at exactly cfg.DACSampleRate Hz while the DAC
// interrupt is armed.
func (m *Modem) DACSample() uint8 {
	return m.seq.DACSample(m.txQ)
}

// Read copies up to len(buf) bytes from the receive queue into buf and
// returns the number copied, blocking according to cfg.RXTimeoutMS
// (spec.md §4.6).
func (m *Modem) Read(buf []byte) int {
	start := m.clock.NowMS()
	for {
		n := m.drain(buf)
		if n > 0 {
			return n
		}
		switch {
		case m.cfg.RXTimeoutMS == 0:
			return 0
		case m.cfg.RXTimeoutMS > 0 && m.clock.NowMS()-start >= int64(m.cfg.RXTimeoutMS):
			return 0
		}
		m.clock.Relax()
	}
}

func (m *Modem) drain(buf []byte) int {
	n := 0
	for n < len(buf) {
		b, ok := m.rxQ.TryPop()
		if !ok {
			break
		}
		buf[n] = b
		n++
	}
	return n
}

// Write copies all of buf into the transmit queue, blocking while the
// queue is full, and starts (or extends) transmission after each byte.
// It always returns len(buf): the higher layer is responsible for
// pre-escaping any payload byte equal to hdlc.Flag, hdlc.Reset, or
// hdlc.Esc before calling Write (spec.md §9).
func (m *Modem) Write(buf []byte) int {
	for _, b := range buf {
		for !m.txQ.TryPush(b) {
			m.clock.Relax()
		}
		m.seq.TxStart(m.cfg.PreambleMS, m.cfg.TrailerMS)
	}
	return len(buf)
}

// Flush blocks until transmission has completed.
func (m *Modem) Flush() {
	for m.seq.Sending() {
		m.clock.Relax()
	}
}

// Sending reports whether the modulator is currently keyed up,
// transmitting a preamble, frame, or trailer.
func (m *Modem) Sending() bool {
	return m.seq.Sending()
}

// Error returns the current status mask.
func (m *Modem) Error() uint32 {
	return m.status.read()
}

// ClearError clears the status mask.
func (m *Modem) ClearError() {
	m.status.clear()
}
