package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/n5bia/afsk1200/dsp"
)

func TestLoadFromReaderAppliesDefaultsUnderPartialOverride(t *testing.T) {
	yaml := `
preamble_ms: 300
ptt:
  method: gpio
  gpio_chip: gpiochip0
  gpio_offset: 17
`
	cfg, err := LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	require.Equal(t, 300, cfg.PreambleMS)
	require.Equal(t, DefaultDACSampleRate, cfg.DACSampleRate)
	require.Equal(t, DefaultTrailerMS, cfg.TrailerMS)
	require.Equal(t, "gpio", cfg.PTT.Method)
	require.Equal(t, "gpiochip0", cfg.PTT.GPIOChip)
	require.Equal(t, 17, cfg.PTT.GPIOOffset)
}

func TestModemConfigTranslatesFilterProfile(t *testing.T) {
	cfg := Default()
	cfg.Filter = "chebyshev"

	mc, err := cfg.ModemConfig()
	require.NoError(t, err)
	require.Equal(t, dsp.ProfileChebyshev, mc.Filter)
	require.Equal(t, cfg.DACSampleRate, mc.DACSampleRate)
}

func TestModemConfigRejectsUnknownFilter(t *testing.T) {
	cfg := Default()
	cfg.Filter = "kalman"

	_, err := cfg.ModemConfig()
	require.Error(t, err)
}

func TestEmptyDocumentYieldsPureDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
