package transform

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// ComplexNorm reduces a complex spectrogram to its magnitude, optionally
// downmixing the channel axis to one synthetic channel. The downmix averages
// magnitudes rather than complex values, which preserves spectral energy.
type ComplexNorm struct {
	mono bool
}

// NewComplexNorm creates a magnitude reduction stage
func NewComplexNorm(mono bool) *ComplexNorm {
	return &ComplexNorm{mono: mono}
}

// Mono reports whether the stage downmixes to a single channel
func (c *ComplexNorm) Mono() bool {
	return c.mono
}

// Transform computes per-bin magnitudes sqrt(re^2+im^2). With mono set the
// channel axis collapses to 1 via the arithmetic mean of the per-channel
// magnitudes.
func (c *ComplexNorm) Transform(spec Spectrogram) (Magnitude, error) {
	// Shape validation only; the packed view is not needed here
	if _, _, _, err := packSpectra(spec); err != nil {
		return nil, err
	}

	mag := make(Magnitude, len(spec))
	for b := range spec {
		mag[b] = make([][][]float64, len(spec[b]))
		for ch := range spec[b] {
			mag[b][ch] = make([][]float64, len(spec[b][ch]))
			for t := range spec[b][ch] {
				row := make([]float64, len(spec[b][ch][t]))
				for k, v := range spec[b][ch][t] {
					row[k] = cmplx.Abs(v)
				}
				mag[b][ch][t] = row
			}
		}
	}

	if !c.mono {
		return mag, nil
	}

	return downmix(mag), nil
}

// downmix averages magnitudes across the channel axis into one channel
func downmix(mag Magnitude) Magnitude {
	mono := make(Magnitude, len(mag))
	for b := range mag {
		channels := len(mag[b])
		frames := len(mag[b][0])

		mixed := make([][]float64, frames)
		for t := 0; t < frames; t++ {
			acc := make([]float64, len(mag[b][0][t]))
			for ch := 0; ch < channels; ch++ {
				floats.Add(acc, mag[b][ch][t])
			}
			floats.Scale(1/float64(channels), acc)
			mixed[t] = acc
		}

		mono[b] = [][][]float64{mixed}
	}
	return mono
}
