package cli

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/RyanBlaney/sonido-unmix/transform"
)

// loadWAV decodes a WAV file into a single-batch waveform with the file's
// channel layout (mono or stereo)
func loadWAV(path string) (transform.Waveform, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	channels := format.NumChannels
	if channels > 2 {
		return nil, 0, fmt.Errorf("%s: %d channels, only mono and stereo WAV are supported", path, channels)
	}

	signals := make([][]float64, channels)
	buffer := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(buffer)
		for i := 0; i < n; i++ {
			signals[0] = append(signals[0], buffer[i][0])
			if channels == 2 {
				signals[1] = append(signals[1], buffer[i][1])
			}
		}
		if !ok {
			break
		}
	}

	if len(signals[0]) == 0 {
		return nil, 0, fmt.Errorf("%s contains no samples", path)
	}

	return transform.Waveform{signals}, int(format.SampleRate), nil
}

// storeWAV writes a single-batch mono or stereo waveform to a WAV file
func storeWAV(path string, x transform.Waveform, sampleRate int) error {
	if len(x) != 1 {
		return fmt.Errorf("expected one batch entry, got %d", len(x))
	}
	if len(x[0]) == 0 || len(x[0]) > 2 {
		return fmt.Errorf("expected 1 or 2 channels, got %d", len(x[0]))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: len(x[0]),
		Precision:   2,
	}

	streamer := &waveformStreamer{channels: x[0]}
	return wav.Encode(f, streamer, format)
}

// waveformStreamer adapts in-memory channel buffers to a beep.Streamer
type waveformStreamer struct {
	channels [][]float64
	pos      int
}

func (s *waveformStreamer) Stream(samples [][2]float64) (int, bool) {
	total := len(s.channels[0])
	if s.pos >= total {
		return 0, false
	}

	n := 0
	for n < len(samples) && s.pos < total {
		left := s.channels[0][s.pos]
		right := left
		if len(s.channels) == 2 {
			right = s.channels[1][s.pos]
		}
		samples[n] = [2]float64{left, right}
		n++
		s.pos++
	}
	return n, true
}

func (s *waveformStreamer) Err() error {
	return nil
}
