package modem

import "sync/atomic"

// atomicStatus is the status mask of spec.md §3/§7: writable from the
// receive ISR, readable and clearable from foreground, never locked.
type atomicStatus struct {
	bits atomic.Uint32
}

func (s *atomicStatus) set(flag uint32) {
	s.bits.Or(flag)
}

func (s *atomicStatus) read() uint32 {
	return s.bits.Load()
}

func (s *atomicStatus) clear() {
	s.bits.Store(0)
}
