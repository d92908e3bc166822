//go:build hamlib

package pttdrv

import "github.com/xylo04/goHamlib"

// HamlibKeyer drives PTT through a CAT-controlled rig via hamlib,
// replacing the teacher's cgo rig_set_ptt path (left disabled mid-port
// in ptt.go) with the pure-Go hamlib binding.
type HamlibKeyer struct {
	rig *hamlib.Rig
}

// NewHamlibKeyer opens the rig identified by model on device (e.g.
// "/dev/ttyUSB0") at the given serial baud rate.
func NewHamlibKeyer(model int, device string, baud int) (*HamlibKeyer, error) {
	rig := hamlib.NewRig(model)
	rig.SetConf("rig_pathname", device)
	if baud > 0 {
		rig.SetConf("serial_speed", baud)
	}
	if err := rig.Open(); err != nil {
		return nil, err
	}
	return &HamlibKeyer{rig: rig}, nil
}

func (k *HamlibKeyer) Set(active bool) error {
	return k.rig.SetPTT(hamlib.VFOCurrent, active)
}

func (k *HamlibKeyer) Close() error {
	return k.rig.Close()
}
