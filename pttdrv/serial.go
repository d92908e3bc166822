package pttdrv

import (
	"os"

	"golang.org/x/sys/unix"
)

// SerialKeyer drives PTT from the RTS or DTR handshaking line of a
// serial port, adapted from the teacher's serial_port_open/_write
// path to use the modem line-status ioctls directly instead of
// opening the port for data I/O.
type SerialKeyer struct {
	f      *os.File
	bit    int // unix.TIOCM_RTS or unix.TIOCM_DTR
	invert bool
}

// NewSerialKeyer opens devicename (e.g. "/dev/ttyUSB0") and returns a
// Keyer that asserts useDTR's line (DTR if true, otherwise RTS) to key
// the transmitter.
func NewSerialKeyer(devicename string, useDTR, invert bool) (*SerialKeyer, error) {
	f, err := os.OpenFile(devicename, os.O_RDWR|os.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	bit := unix.TIOCM_RTS
	if useDTR {
		bit = unix.TIOCM_DTR
	}
	return &SerialKeyer{f: f, bit: bit, invert: invert}, nil
}

func (k *SerialKeyer) Set(active bool) error {
	status, err := unix.IoctlGetInt(int(k.f.Fd()), unix.TIOCMGET)
	if err != nil {
		return err
	}
	want := active != k.invert
	switch {
	case want && status&k.bit == 0:
		status |= k.bit
	case !want && status&k.bit != 0:
		status &^= k.bit
	default:
		return nil
	}
	return unix.IoctlSetPointerInt(int(k.f.Fd()), unix.TIOCMSET, status)
}

func (k *SerialKeyer) Close() error {
	return k.f.Close()
}
