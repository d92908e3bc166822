// Package pttdrv drives the transmitter's push-to-talk line from the
// modem's Sending() state. It mirrors the teacher's ptt_set_real
// dispatch over several real keying methods (GPIO, serial RTS/DTR, CAT
// rig control) behind one small interface.
package pttdrv

// Keyer asserts or releases the transmitter's push-to-talk line. Set is
// called once per transition, not on every DAC sample.
type Keyer interface {
	Set(active bool) error
	Close() error
}

// NullKeyer is a Keyer that does nothing, for bench testing without a
// radio attached.
type NullKeyer struct{}

func (NullKeyer) Set(bool) error { return nil }
func (NullKeyer) Close() error   { return nil }

// Watcher polls a Sending predicate and drives a Keyer on each
// on/off transition of the transmitter's active state. It is
// the foreground-thread counterpart of the ISR-only Sequencer: PTT
// keying is not latency critical enough to need ISR context, so it is
// driven from ordinary polling the way the teacher's main loop does.
type Watcher struct {
	keyer  Keyer
	active bool
}

// NewWatcher builds a Watcher around keyer, initially assuming the
// line is released.
func NewWatcher(keyer Keyer) *Watcher {
	return &Watcher{keyer: keyer}
}

// Poll drives the keyer's line to match sending, returning any error
// from the underlying Keyer. It is a no-op when the state hasn't
// changed since the last call.
func (w *Watcher) Poll(sending bool) error {
	if sending == w.active {
		return nil
	}
	w.active = sending
	return w.keyer.Set(sending)
}

// Close releases the underlying Keyer, dropping PTT first if it is
// still asserted.
func (w *Watcher) Close() error {
	if w.active {
		_ = w.keyer.Set(false)
	}
	return w.keyer.Close()
}
