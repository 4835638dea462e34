package transform

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps the discrete Fourier transforms used by the encoder and decoder
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Forward computes the FFT of a real frame using mjibson/go-dsp.
// The caller keeps the first n/2+1 bins for the one-sided spectrum.
func (f *FFT) Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFTReal(x)
}

// InverseReal computes the inverse FFT and returns the real part only
func (f *FFT) InverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}
