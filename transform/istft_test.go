package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxAbsError(x, y Waveform) float64 {
	maxErr := 0.0
	for b := range x {
		for c := range x[b] {
			for i := range x[b][c] {
				if err := math.Abs(x[b][c][i] - y[b][c][i]); err > maxErr {
					maxErr = err
				}
			}
		}
	}
	return maxErr
}

func TestNewISTFTValidatesConfig(t *testing.T) {
	_, err := NewISTFT(Config{NFFT: 0, NHop: 1}, nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	window, err := NewHannWindow(16)
	require.NoError(t, err)
	_, err = NewISTFT(Config{NFFT: 32, NHop: 8}, window)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestRoundTripPerfectReconstruction(t *testing.T) {
	// center=true with length equal to the encoded sample count inverts
	// the forward transform up to floating-point round-off
	cfg := Config{NFFT: 512, NHop: 128, Center: true}
	encoder, decoder, err := NewPair(cfg)
	require.NoError(t, err)

	x := randomWaveform(2, 2, 1024, 42)

	spec, err := encoder.Transform(x)
	require.NoError(t, err)

	y, err := decoder.Transform(spec, 1024)
	require.NoError(t, err)

	require.Len(t, y, 2)
	require.Len(t, y[0], 2)
	require.Equal(t, 1024, y.Samples())

	assert.Less(t, maxAbsError(x, y), 1e-9)
}

func TestRoundTripHopMultipleLengths(t *testing.T) {
	cfg := Config{NFFT: 256, NHop: 64, Center: true}

	for _, samples := range []int{256, 512, 1024, 4096} {
		encoder, decoder, err := NewPair(cfg)
		require.NoError(t, err)

		x := randomWaveform(1, 1, samples, int64(samples))

		spec, err := encoder.Transform(x)
		require.NoError(t, err)

		y, err := decoder.Transform(spec, samples)
		require.NoError(t, err)
		require.Equal(t, samples, y.Samples())

		assert.Less(t, maxAbsError(x, y), 1e-9, "samples=%d", samples)
	}
}

func TestRoundTripNaturalLengthCentered(t *testing.T) {
	// With centering and a hop-multiple sample count, the natural
	// reconstruction length already equals the input length
	cfg := Config{NFFT: 128, NHop: 32, Center: true}
	encoder, decoder, err := NewPair(cfg)
	require.NoError(t, err)

	x := randomWaveform(1, 2, 640, 9)

	spec, err := encoder.Transform(x)
	require.NoError(t, err)

	y, err := decoder.Transform(spec, 0)
	require.NoError(t, err)
	assert.Equal(t, 640, y.Samples())
	assert.Less(t, maxAbsError(x, y), 1e-9)
}

func TestTransformRejectsMismatchedBins(t *testing.T) {
	cfg := Config{NFFT: 64, NHop: 16, Center: false}
	encoder, err := NewSTFT(cfg, nil)
	require.NoError(t, err)

	spec, err := encoder.Transform(randomWaveform(1, 1, 256, 4))
	require.NoError(t, err)

	decoder, err := NewISTFT(Config{NFFT: 128, NHop: 32, Center: false}, nil)
	require.NoError(t, err)

	_, err = decoder.Transform(spec, 0)
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestTransformLengthCropAndPad(t *testing.T) {
	cfg := Config{NFFT: 64, NHop: 16, Center: false}
	encoder, decoder, err := NewPair(cfg)
	require.NoError(t, err)

	x := randomWaveform(1, 1, 256, 8)
	spec, err := encoder.Transform(x)
	require.NoError(t, err)

	natural, err := decoder.Transform(spec, 0)
	require.NoError(t, err)
	frames := spec.Frames()
	require.Equal(t, 64+(frames-1)*16, natural.Samples())

	cropped, err := decoder.Transform(spec, 100)
	require.NoError(t, err)
	require.Equal(t, 100, cropped.Samples())
	assert.Equal(t, natural[0][0][:100], cropped[0][0])

	padded, err := decoder.Transform(spec, natural.Samples()+50)
	require.NoError(t, err)
	require.Equal(t, natural.Samples()+50, padded.Samples())
	assert.Equal(t, natural[0][0], padded[0][0][:natural.Samples()])
	for _, v := range padded[0][0][natural.Samples():] {
		assert.Equal(t, 0.0, v)
	}
}

func TestTransformRejectsEmptySpectrogram(t *testing.T) {
	decoder, err := NewISTFT(Config{NFFT: 64, NHop: 16}, nil)
	require.NoError(t, err)

	_, err = decoder.Transform(Spectrogram{}, 0)
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestRoundTripUncenteredInterior(t *testing.T) {
	// Without centering the edges lose window coverage, but interior
	// samples still reconstruct once every frame that covers them is
	// present
	cfg := Config{NFFT: 128, NHop: 32, Center: false}
	encoder, decoder, err := NewPair(cfg)
	require.NoError(t, err)

	x := randomWaveform(1, 1, 1024, 17)

	spec, err := encoder.Transform(x)
	require.NoError(t, err)

	y, err := decoder.Transform(spec, 0)
	require.NoError(t, err)

	maxErr := 0.0
	for i := 128; i < y.Samples()-128; i++ {
		if err := math.Abs(x[0][0][i] - y[0][0][i]); err > maxErr {
			maxErr = err
		}
	}
	assert.Less(t, maxErr, 1e-9)
}
