package transform

import (
	"fmt"

	"github.com/RyanBlaney/sonido-unmix/logging"
)

// AudioEncoder is the analysis frontend used ahead of estimation: a forward
// transform followed by magnitude reduction, downmixing when the configured
// channel count is 1. It holds no learned state and is safe for concurrent
// use.
type AudioEncoder struct {
	stft        *STFT
	norm        *ComplexNorm
	sampleRate  int
	numChannels int
	logger      logging.Logger
}

// NewAudioEncoder creates an analysis frontend for one
// (n_fft, n_hop, sample_rate, channels) tuple
func NewAudioEncoder(nFFT, nHop, sampleRate, numChannels int) (*AudioEncoder, error) {
	if sampleRate <= 0 {
		return nil, NewConfigError(fmt.Sprintf("sample rate must be positive, got %d", sampleRate))
	}
	if numChannels <= 0 {
		return nil, NewConfigError(fmt.Sprintf("channel count must be positive, got %d", numChannels))
	}

	stft, err := NewSTFT(Config{NFFT: nFFT, NHop: nHop, Center: false}, nil)
	if err != nil {
		return nil, err
	}

	return &AudioEncoder{
		stft:        stft,
		norm:        NewComplexNorm(numChannels == 1),
		sampleRate:  sampleRate,
		numChannels: numChannels,
		logger:      logging.WithFields(logging.Fields{"component": "audio_encoder"}),
	}, nil
}

// STFT returns the forward transform stage
func (e *AudioEncoder) STFT() *STFT {
	return e.stft
}

// SampleRate returns the configured sample rate
func (e *AudioEncoder) SampleRate() int {
	return e.sampleRate
}

// Channels returns the configured channel count
func (e *AudioEncoder) Channels() int {
	return e.numChannels
}

// Encode runs the forward transform and magnitude reduction
func (e *AudioEncoder) Encode(x Waveform) (Magnitude, error) {
	spec, err := e.stft.Transform(x)
	if err != nil {
		return nil, err
	}
	return e.norm.Transform(spec)
}
