// Command kisspty exposes the modem's byte-stream facade on a
// pseudo-terminal instead of stdin/stdout, so a serial terminal program
// (cutecom, picocom) or an AX.25 stack can attach to it as it would to
// a serial port — the same role the teacher's kissutil plays for a TCP
// or hardware-serial TNC, here adapted to a loopback pty for development
// without radio hardware. It does not speak the KISS protocol: the pty
// carries the framer's byte stream (0x7E flags, 0x1B escapes) as is.
package main

import (
	"fmt"
	"os"

	"github.com/creack/pty"
	"github.com/spf13/pflag"

	"github.com/n5bia/afsk1200/audiobackend"
	"github.com/n5bia/afsk1200/config"
	"github.com/n5bia/afsk1200/modem"
)

var (
	configPath = pflag.StringP("config", "c", "", "Path to afskmodem.yaml (defaults built in if omitted)")
	help       = pflag.BoolP("help", "h", false, "Display help text")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: kisspty [options]")
		fmt.Fprintln(os.Stderr, "Prints the pty device name, then bridges it to the modem until killed.")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "kisspty:", err)
		os.Exit(1)
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

	mc, err := cfg.ModemConfig()
	if err != nil {
		return err
	}
	mc.RXTimeoutMS = -1

	master, slave, err := pty.Open()
	if err != nil {
		return fmt.Errorf("opening pty: %w", err)
	}
	defer master.Close()
	defer slave.Close()
	fmt.Println(slave.Name())

	sink := audiobackend.NewRecorder(cfg.DACSampleRate)
	m := modem.New(mc, sink, modem.SystemClock{})

	const adcRate = 9600
	if cfg.DACSampleRate == adcRate {
		go audiobackend.Loopback(adcRate, sink, m.DACSample, m.ADCSample)
	} else {
		go audiobackend.Silence(adcRate, m.ADCSample)
		go audiobackend.Drive(cfg.DACSampleRate, sink, m.DACSample)
	}

	go pumpToModem(master, m)
	return pumpFromModem(m, master)
}

// pumpToModem reads whatever the attached client writes to the pty
// master and queues it for transmission.
func pumpToModem(master *os.File, m *modem.Modem) {
	buf := make([]byte, 256)
	for {
		n, err := master.Read(buf)
		if n > 0 {
			m.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// pumpFromModem drains received bytes into the pty master for the
// attached client to read.
func pumpFromModem(m *modem.Modem, master *os.File) error {
	buf := make([]byte, 256)
	for {
		n := m.Read(buf)
		if n == 0 {
			continue
		}
		if _, err := master.Write(buf[:n]); err != nil {
			return err
		}
	}
}
