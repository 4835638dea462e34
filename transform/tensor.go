package transform

import "fmt"

// Waveform is a batched multichannel signal laid out as
// [batch][channel][sample]. The sample axis is the transform axis.
type Waveform [][][]float64

// Spectrogram is a batched multichannel complex spectrogram laid out as
// [batch][channel][frame][bin] with one-sided bins (n_fft/2+1 per frame)
type Spectrogram [][][][]complex128

// Magnitude is a batched real non-negative spectrogram laid out as
// [batch][channel][frame][bin]
type Magnitude [][][][]float64

// NewWaveform allocates a zero waveform of the given shape
func NewWaveform(batch, channels, samples int) Waveform {
	x := make(Waveform, batch)
	for b := range x {
		x[b] = make([][]float64, channels)
		for c := range x[b] {
			x[b][c] = make([]float64, samples)
		}
	}
	return x
}

// Samples returns the sample count of the waveform's transform axis
func (x Waveform) Samples() int {
	if len(x) == 0 || len(x[0]) == 0 {
		return 0
	}
	return len(x[0][0])
}

// Frames returns the frame count of the spectrogram's time axis
func (s Spectrogram) Frames() int {
	if len(s) == 0 || len(s[0]) == 0 {
		return 0
	}
	return len(s[0][0])
}

// Bins returns the one-sided bin count of the spectrogram's frequency axis
func (s Spectrogram) Bins() int {
	if s.Frames() == 0 {
		return 0
	}
	return len(s[0][0][0])
}

// packSignals collapses the batch and channel axes into a flat signal list,
// the 1-D analog of packing leading tensor axes into one synthetic axis.
// The waveform must be rectangular: every channel of every batch entry
// carries the same sample count.
func packSignals(x Waveform) (signals [][]float64, batch, channels int, err error) {
	batch = len(x)
	if batch == 0 {
		return nil, 0, 0, NewShapeError("waveform has no batch entries")
	}

	channels = len(x[0])
	if channels == 0 {
		return nil, 0, 0, NewShapeError("waveform has no channels")
	}

	samples := len(x[0][0])
	if samples == 0 {
		return nil, 0, 0, NewShapeError("waveform has no samples")
	}

	signals = make([][]float64, 0, batch*channels)
	for b := range x {
		if len(x[b]) != channels {
			return nil, 0, 0, NewShapeError(fmt.Sprintf(
				"ragged channel axis: batch %d has %d channels, expected %d", b, len(x[b]), channels))
		}
		for c := range x[b] {
			if len(x[b][c]) != samples {
				return nil, 0, 0, NewShapeError(fmt.Sprintf(
					"ragged sample axis: batch %d channel %d has %d samples, expected %d",
					b, c, len(x[b][c]), samples))
			}
			signals = append(signals, x[b][c])
		}
	}

	return signals, batch, channels, nil
}

// unpackSignals restores the batch and channel axes over a flat signal list
func unpackSignals(signals [][]float64, batch, channels int) Waveform {
	x := make(Waveform, batch)
	for b := range x {
		x[b] = signals[b*channels : (b+1)*channels]
	}
	return x
}

// packSpectra collapses the batch and channel axes of a spectrogram into a
// flat per-signal spectra list, validating that the frame and bin axes are
// rectangular across the whole batch.
func packSpectra(s Spectrogram) (spectra [][][]complex128, batch, channels int, err error) {
	batch = len(s)
	if batch == 0 {
		return nil, 0, 0, NewShapeError("spectrogram has no batch entries")
	}

	channels = len(s[0])
	if channels == 0 {
		return nil, 0, 0, NewShapeError("spectrogram has no channels")
	}

	frames := len(s[0][0])
	if frames == 0 {
		return nil, 0, 0, NewShapeError("spectrogram has no frames")
	}

	bins := len(s[0][0][0])
	spectra = make([][][]complex128, 0, batch*channels)
	for b := range s {
		if len(s[b]) != channels {
			return nil, 0, 0, NewShapeError(fmt.Sprintf(
				"ragged channel axis: batch %d has %d channels, expected %d", b, len(s[b]), channels))
		}
		for c := range s[b] {
			if len(s[b][c]) != frames {
				return nil, 0, 0, NewShapeError(fmt.Sprintf(
					"ragged frame axis: batch %d channel %d has %d frames, expected %d",
					b, c, len(s[b][c]), frames))
			}
			for t := range s[b][c] {
				if len(s[b][c][t]) != bins {
					return nil, 0, 0, NewShapeError(fmt.Sprintf(
						"ragged bin axis: frame %d has %d bins, expected %d", t, len(s[b][c][t]), bins))
				}
			}
			spectra = append(spectra, s[b][c])
		}
	}

	return spectra, batch, channels, nil
}

// unpackSpectra restores the batch and channel axes over a flat spectra list
func unpackSpectra(spectra [][][]complex128, batch, channels int) Spectrogram {
	s := make(Spectrogram, batch)
	for b := range s {
		s[b] = spectra[b*channels : (b+1)*channels]
	}
	return s
}

// reflectPad mirrors pad samples around each end of the signal without
// repeating the edge sample. Requires len(signal) > pad.
func reflectPad(signal []float64, pad int) ([]float64, error) {
	if pad == 0 {
		return signal, nil
	}
	if len(signal) <= pad {
		return nil, NewShapeError(fmt.Sprintf(
			"signal of %d samples is too short for reflect padding of %d", len(signal), pad))
	}

	padded := make([]float64, len(signal)+2*pad)
	copy(padded[pad:], signal)
	for i := 0; i < pad; i++ {
		padded[pad-1-i] = signal[i+1]
		padded[pad+len(signal)+i] = signal[len(signal)-2-i]
	}
	return padded, nil
}
