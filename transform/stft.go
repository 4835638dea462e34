package transform

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-unmix/logging"
)

// STFT is the forward short-time Fourier transform over batched
// multichannel waveforms. Instances are immutable after construction and
// safe for concurrent use.
type STFT struct {
	cfg    Config
	window *Window
	fft    *FFT
	logger logging.Logger
}

// NewSTFT creates a forward transform. A nil window selects the symmetric
// Hann window of length cfg.NFFT; a supplied window must match cfg.NFFT.
func NewSTFT(cfg Config, window *Window) (*STFT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if window == nil {
		var err error
		window, err = NewHannWindow(cfg.NFFT)
		if err != nil {
			return nil, err
		}
	} else if window.Size() != cfg.NFFT {
		return nil, NewConfigError(fmt.Sprintf(
			"window length (%d) doesn't match n_fft (%d)", window.Size(), cfg.NFFT))
	}

	return &STFT{
		cfg:    cfg,
		window: window,
		fft:    NewFFT(),
		logger: logging.WithFields(logging.Fields{"component": "stft"}),
	}, nil
}

// Config returns the transform configuration
func (s *STFT) Config() Config {
	return s.cfg
}

// Window returns the shared analysis window
func (s *STFT) Window() *Window {
	return s.window
}

// Bins returns the number of one-sided frequency bins per frame
func (s *STFT) Bins() int {
	return s.cfg.Bins()
}

// FrameCount returns the number of frames produced for a signal of the
// given sample count: 1 + (padded-n_fft)/n_hop, where padding adds
// n_fft/2 per side when centering is enabled.
func (s *STFT) FrameCount(samples int) (int, error) {
	padded := samples
	if s.cfg.Center {
		padded += 2 * s.cfg.pad()
	}
	if padded < s.cfg.NFFT {
		return 0, NewShapeError(fmt.Sprintf(
			"signal of %d samples is too short for n_fft %d", samples, s.cfg.NFFT))
	}
	return 1 + (padded-s.cfg.NFFT)/s.cfg.NHop, nil
}

// FreqResolution returns the frequency resolution in Hz per bin
func (s *STFT) FreqResolution(sampleRate int) float64 {
	return float64(sampleRate) / float64(s.cfg.NFFT)
}

// TimeResolution returns the time resolution in seconds per frame
func (s *STFT) TimeResolution(sampleRate int) float64 {
	return float64(s.cfg.NHop) / float64(sampleRate)
}

// Transform computes the one-sided complex spectrogram of a batched
// multichannel waveform. The batch and channel axes are packed into one
// synthetic axis, each signal is framed, windowed and transformed, and the
// original axes are restored on the result.
func (s *STFT) Transform(x Waveform) (Spectrogram, error) {
	signals, batch, channels, err := packSignals(x)
	if err != nil {
		return nil, err
	}

	// Rectangularity holds after packing, so one frame count serves all signals
	numFrames, err := s.FrameCount(len(signals[0]))
	if err != nil {
		return nil, err
	}
	if s.cfg.Center {
		// Reflect padding needs at least pad+1 samples to mirror
		if len(signals[0]) <= s.cfg.pad() {
			return nil, NewShapeError(fmt.Sprintf(
				"signal of %d samples is too short for reflect padding of %d",
				len(signals[0]), s.cfg.pad()))
		}
	}

	spectra := make([][][]complex128, len(signals))

	numWorkers := optimalWorkerCount(len(signals))
	jobs := make(chan int, len(signals))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse the frame buffer within a worker
			frameBuffer := make([]float64, s.cfg.NFFT)

			for idx := range jobs {
				spectra[idx] = s.transformSignal(signals[idx], numFrames, frameBuffer)
			}
		}()
	}

	for idx := range signals {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return unpackSpectra(spectra, batch, channels), nil
}

// transformSignal frames, windows and transforms one packed signal.
// Shape validation already happened, so this path cannot fail.
func (s *STFT) transformSignal(signal []float64, numFrames int, frameBuffer []float64) [][]complex128 {
	if s.cfg.Center {
		signal, _ = reflectPad(signal, s.cfg.pad())
	}

	bins := s.cfg.Bins()
	frames := make([][]complex128, numFrames)

	for t := 0; t < numFrames; t++ {
		start := t * s.cfg.NHop
		copy(frameBuffer, signal[start:start+s.cfg.NFFT])
		s.window.applyTo(frameBuffer)

		spectrum := s.fft.Forward(frameBuffer)

		frames[t] = make([]complex128, bins)
		copy(frames[t], spectrum[:bins])
	}

	return frames
}

// optimalWorkerCount sizes the worker pool from the number of packed signals
func optimalWorkerCount(numSignals int) int {
	numCPU := runtime.NumCPU()

	if numSignals < numCPU {
		return max(numSignals, 1)
	}
	return numCPU
}
