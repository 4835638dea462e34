package transform

import (
	"fmt"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-unmix/logging"
)

// windowEnergyFloor guards the overlap-add normalization against division
// by vanishing window energy at the buffer edges
const windowEnergyFloor = 1e-11

// ISTFT is the inverse short-time Fourier transform over batched
// multichannel complex spectrograms. Instances are immutable after
// construction and safe for concurrent use.
type ISTFT struct {
	cfg      Config
	window   *Window
	windowSq []float64
	fft      *FFT
	logger   logging.Logger
}

// NewISTFT creates an inverse transform. A nil window selects the symmetric
// Hann window of length cfg.NFFT; a supplied window must match cfg.NFFT.
// For reconstruction the window must be the one the encoder used.
func NewISTFT(cfg Config, window *Window) (*ISTFT, error) {
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

	windowSq := make([]float64, cfg.NFFT)
	floats.MulTo(windowSq, window.coefficients, window.coefficients)

	return &ISTFT{
		cfg:      cfg,
		window:   window,
		windowSq: windowSq,
		fft:      NewFFT(),
		logger:   logging.WithFields(logging.Fields{"component": "istft"}),
	}, nil
}

// Config returns the transform configuration
func (s *ISTFT) Config() Config {
	return s.cfg
}

// Window returns the shared analysis window
func (s *ISTFT) Window() *Window {
	return s.window
}

// Transform reconstructs a batched multichannel waveform from a one-sided
// complex spectrogram via windowed overlap-add, normalized by the
// accumulated squared window energy per sample. A positive length crops or
// zero-pads every signal to exactly that many samples; length <= 0 keeps
// the natural reconstruction length.
func (s *ISTFT) Transform(spec Spectrogram, length int) (Waveform, error) {
	spectra, batch, channels, err := packSpectra(spec)
	if err != nil {
		return nil, err
	}

	if bins := len(spectra[0][0]); bins != s.cfg.Bins() {
		return nil, NewShapeError(fmt.Sprintf(
			"spectrogram has %d bins, n_fft %d requires %d", bins, s.cfg.NFFT, s.cfg.Bins()))
	}

	signals := make([][]float64, len(spectra))

	numWorkers := optimalWorkerCount(len(spectra))
	jobs := make(chan int, len(spectra))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse the two-sided spectrum buffer within a worker
			full := make([]complex128, s.cfg.NFFT)

			for idx := range jobs {
				signals[idx] = s.inverseSignal(spectra[idx], length, full)
			}
		}()
	}

	for idx := range spectra {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return unpackSignals(signals, batch, channels), nil
}

// inverseSignal rebuilds one packed signal from its frames
func (s *ISTFT) inverseSignal(frames [][]complex128, length int, full []complex128) []float64 {
	nfft := s.cfg.NFFT
	bins := s.cfg.Bins()
	total := nfft + (len(frames)-1)*s.cfg.NHop

	out := make([]float64, total)
	envelope := make([]float64, total)

	for t, frame := range frames {
		// Rebuild the two-sided spectrum from the one-sided bins
		copy(full, frame)
		for k := bins; k < nfft; k++ {
			full[k] = cmplx.Conj(frame[nfft-k])
		}

		segment := s.fft.InverseReal(full)
		s.window.applyTo(segment)

		start := t * s.cfg.NHop
		floats.Add(out[start:start+nfft], segment)
		floats.Add(envelope[start:start+nfft], s.windowSq)
	}

	for i := range out {
		if envelope[i] > windowEnergyFloor {
			out[i] /= envelope[i]
		}
	}

	if s.cfg.Center {
		out = out[s.cfg.pad() : total-s.cfg.pad()]
	}

	if length > 0 && length != len(out) {
		if length < len(out) {
			out = out[:length]
		} else {
			cropped := make([]float64, length)
			copy(cropped, out)
			out = cropped
		}
	}

	return out
}
