// Package config loads modem configuration from a YAML file, the
// replacement for the teacher's config_init text-format parser
// (src/config.go) which filled in an audio_s/achan_param_s tree of
// per-channel defaults before applying user overrides line by line.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/n5bia/afsk1200/dsp"
	"github.com/n5bia/afsk1200/modem"
)

// Defaults mirror config_init's DEFAULT_MARK_FREQ/DEFAULT_SPACE_FREQ/
// DEFAULT_BAUD-style constants, adapted to this modem's fixed
// Bell-202 parameters.
const (
	DefaultDACSampleRate = 9600
	DefaultPreambleMS    = 150
	DefaultTrailerMS     = 50
	DefaultRXTimeoutMS   = 0
	DefaultFilter        = "butterworth"
	DefaultRXQueueLen    = 256
	DefaultTXQueueLen    = 256
)

// File is the on-disk shape of afskmodem.yaml.
type File struct {
	DACSampleRate int    `yaml:"dac_sample_rate"`
	PreambleMS    int    `yaml:"preamble_ms"`
	TrailerMS     int    `yaml:"trailer_ms"`
	RXTimeoutMS   int    `yaml:"rx_timeout_ms"`
	Filter        string `yaml:"filter"`
	RXQueueLen    int    `yaml:"rx_queue_len"`
	TXQueueLen    int    `yaml:"tx_queue_len"`

	PTT PTTConfig `yaml:"ptt"`
}

// PTTConfig selects and parameterises one push-to-talk keying method.
// Method is one of "none", "gpio", "serial", "hamlib".
type PTTConfig struct {
	Method string `yaml:"method"`
	Invert bool   `yaml:"invert"`

	GPIOChip   string `yaml:"gpio_chip"`
	GPIOOffset int    `yaml:"gpio_offset"`

	SerialDevice string `yaml:"serial_device"`
	SerialUseDTR bool   `yaml:"serial_use_dtr"`

	HamlibModel  int    `yaml:"hamlib_model"`
	HamlibDevice string `yaml:"hamlib_device"`
	HamlibBaud   int    `yaml:"hamlib_baud"`
}

// Default returns a File pre-filled the way config_init seeds
// achan[channel] before any config lines are read.
func Default() File {
	return File{
		DACSampleRate: DefaultDACSampleRate,
		PreambleMS:    DefaultPreambleMS,
		TrailerMS:     DefaultTrailerMS,
		RXTimeoutMS:   DefaultRXTimeoutMS,
		Filter:        DefaultFilter,
		RXQueueLen:    DefaultRXQueueLen,
		TXQueueLen:    DefaultTXQueueLen,
		PTT:           PTTConfig{Method: "none"},
	}
}

// Load reads and parses path, applying File defaults for any field
// the YAML document omits. A field the document sets explicitly keeps
// that value, even when it is zero.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses a YAML document from r on top of Default().
func LoadFromReader(r io.Reader) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return File{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

// ModemConfig translates the YAML-facing File into modem.Config.
func (f File) ModemConfig() (modem.Config, error) {
	profile, err := parseFilter(f.Filter)
	if err != nil {
		return modem.Config{}, err
	}
	return modem.Config{
		DACSampleRate: f.DACSampleRate,
		PreambleMS:    f.PreambleMS,
		TrailerMS:     f.TrailerMS,
		RXTimeoutMS:   f.RXTimeoutMS,
		Filter:        profile,
		RXQueueLen:    f.RXQueueLen,
		TXQueueLen:    f.TXQueueLen,
	}, nil
}

func parseFilter(name string) (dsp.Profile, error) {
	switch name {
	case "butterworth", "":
		return dsp.ProfileButterworth, nil
	case "chebyshev":
		return dsp.ProfileChebyshev, nil
	default:
		return 0, fmt.Errorf("config: unknown filter profile %q", name)
	}
}
