// Command afskmodem runs the AFSK1200 modem core against a software
// loopback (DAC samples recorded in memory and, at a 9600 Hz DAC rate,
// fed straight back to the ADC; no sound card is opened) and exposes the
// byte-stream facade over standard input/output, the successor to the
// teacher's kissutil: a small standalone program for talking to a TNC
// rather than the full direwolf daemon.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/n5bia/afsk1200/audiobackend"
	"github.com/n5bia/afsk1200/config"
	"github.com/n5bia/afsk1200/modem"
	"github.com/n5bia/afsk1200/pttdrv"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "afskmodem"})

var (
	configPath = pflag.StringP("config", "c", "", "Path to afskmodem.yaml (defaults built in if omitted)")
	pttMethod  = pflag.String("ptt", "", "Override ptt.method from the config file: none, gpio, serial")
	verbose    = pflag.BoolP("verbose", "v", false, "Log the byte count of every read from and write to the modem")
	help       = pflag.BoolP("help", "h", false, "Display help text")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: afskmodem [options]")
		fmt.Fprintln(os.Stderr, "Reads HDLC payload bytes from stdin to transmit, writes received payload bytes to stdout.")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(); err != nil {
		logger.Fatal("exiting", "err", err)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *pttMethod != "" {
		cfg.PTT.Method = *pttMethod
	}

	mc, err := cfg.ModemConfig()
	if err != nil {
		return err
	}
	// Unlike the library default (non-blocking, for a foreground loop
	// with other work to do), this command has nothing else to do
	// between frames, so it blocks rather than spinning stdout.
	mc.RXTimeoutMS = -1

	sink := audiobackend.NewRecorder(cfg.DACSampleRate)
	m := modem.New(mc, sink, modem.SystemClock{})

	const adcRate = 9600
	if cfg.DACSampleRate == adcRate {
		go audiobackend.Loopback(adcRate, sink, m.DACSample, m.ADCSample)
	} else {
		go audiobackend.Silence(adcRate, m.ADCSample)
		go audiobackend.Drive(cfg.DACSampleRate, sink, m.DACSample)
	}

	keyer, err := buildKeyer(cfg.PTT)
	if err != nil {
		return err
	}
	watcher := pttdrv.NewWatcher(keyer)
	defer watcher.Close()

	go pumpStdin(m)
	go pollPTT(m, watcher)
	return pumpStdout(m)
}

// pollPTT keeps the PTT line in sync with the modem's transmit state.
// It runs independently of pumpStdout so a transmission keys up
// promptly even when nothing is ever received.
func pollPTT(m *modem.Modem, watcher *pttdrv.Watcher) {
	for range time.Tick(10 * time.Millisecond) {
		if err := watcher.Poll(m.Sending()); err != nil {
			fmt.Fprintln(os.Stderr, "afskmodem: ptt:", err)
		}
	}
}

func buildKeyer(cfg config.PTTConfig) (pttdrv.Keyer, error) {
	switch cfg.Method {
	case "", "none":
		return pttdrv.NullKeyer{}, nil
	case "gpio":
		return pttdrv.NewGPIOKeyer(cfg.GPIOChip, cfg.GPIOOffset, cfg.Invert)
	case "serial":
		return pttdrv.NewSerialKeyer(cfg.SerialDevice, cfg.SerialUseDTR, cfg.Invert)
	default:
		return nil, fmt.Errorf("unsupported ptt method %q (this command supports none, gpio, serial)", cfg.Method)
	}
}

// pumpStdin reads bytes from stdin and writes them into the modem's
// transmit queue until EOF.
func pumpStdin(m *modem.Modem) {
	buf := make([]byte, 256)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			m.Write(buf[:n])
			if *verbose {
				fmt.Fprintf(os.Stderr, "afskmodem: tx %d bytes\n", n)
			}
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "afskmodem: stdin:", err)
			}
			return
		}
	}
}

// pumpStdout drains received bytes to stdout until stdout closes.
func pumpStdout(m *modem.Modem) error {
	buf := make([]byte, 256)
	for {
		n := m.Read(buf)
		if n == 0 {
			continue
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "afskmodem: rx %d bytes\n", n)
		}
	}
}
