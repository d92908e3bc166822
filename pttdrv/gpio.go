package pttdrv

import (
	"github.com/warthog618/go-gpiocdev"
)

// GPIOKeyer drives PTT from a single GPIO line via the Linux gpiod
// character-device interface, the way the teacher's OCTYPE_PTT/
// PTT_METHOD_GPIOD path does. Invert swaps which logic level means
// "transmit", matching an open-collector keying transistor wired
// active-low.
type GPIOKeyer struct {
	line   *gpiocdev.Line
	invert bool
}

// NewGPIOKeyer requests offset on chip (e.g. "gpiochip0") as an output
// line and returns a Keyer driving it.
func NewGPIOKeyer(chip string, offset int, invert bool) (*GPIOKeyer, error) {
	initial := 0
	if invert {
		initial = 1
	}
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(initial),
		gpiocdev.WithConsumer("afsk1200-ptt"),
	)
	if err != nil {
		return nil, err
	}
	return &GPIOKeyer{line: line, invert: invert}, nil
}

func (k *GPIOKeyer) Set(active bool) error {
	v := 0
	if active != k.invert {
		v = 1
	}
	return k.line.SetValue(v)
}

func (k *GPIOKeyer) Close() error {
	return k.line.Close()
}
