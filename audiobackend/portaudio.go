//go:build portaudio

package audiobackend

import (
	"github.com/gordonklaus/portaudio"
)

// PortAudioSink is a SampleSink backed by a live PortAudio output
// stream, the real-hardware counterpart of Recorder and the
// replacement for the teacher's ALSA snd_pcm_t output handle.
type PortAudioSink struct {
	rate   int
	stream *portaudio.Stream
	next   func() (uint8, bool)
}

// NewPortAudioSink opens the default output device at rate Hz,
// mono, 8-bit unsigned samples pulled one at a time from next.
func NewPortAudioSink(rate int, next func() (uint8, bool)) (*PortAudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &PortAudioSink{rate: rate, next: next}
	out := make([]uint8, 1)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(rate), len(out), func(outBuf []uint8) {
		for i := range outBuf {
			v, ok := next()
			if !ok {
				v = 0x80 // DC-centred silence, matching the DDS idle level.
			}
			outBuf[i] = v
		}
	})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *PortAudioSink) SampleRate() int { return s.rate }

func (s *PortAudioSink) Start() {
	_ = s.stream.Start()
}

func (s *PortAudioSink) Stop() {
	_ = s.stream.Stop()
}

// Close releases the stream and the PortAudio library handle.
func (s *PortAudioSink) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

// PortAudioSource is a SampleSource backed by a live PortAudio input
// stream, feeding ADC samples to the demodulator via a callback.
type PortAudioSource struct {
	rate   int
	stream *portaudio.Stream
}

// NewPortAudioSource opens the default input device at rate Hz, mono,
// signed 8-bit samples, invoking onSample for each one.
func NewPortAudioSource(rate int, onSample func(int8)) (*PortAudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	in := make([]int8, 1)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(rate), len(in), func(inBuf []int8) {
		for _, s := range inBuf {
			onSample(s)
		}
	})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return &PortAudioSource{rate: rate, stream: stream}, nil
}

func (s *PortAudioSource) SampleRate() int { return s.rate }

func (s *PortAudioSource) Start() error { return s.stream.Start() }
func (s *PortAudioSource) Stop() error  { return s.stream.Stop() }

func (s *PortAudioSource) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
