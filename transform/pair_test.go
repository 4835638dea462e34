package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-unmix/logging"
)

func TestNewPairSharesWindow(t *testing.T) {
	encoder, decoder, err := NewPair(Config{NFFT: 512, NHop: 128, Center: true})
	require.NoError(t, err)

	assert.Same(t, encoder.Window(), decoder.Window())
	assert.True(t, ValidatePair(encoder, decoder))
}

func TestNewPairPropagatesConfigError(t *testing.T) {
	_, _, err := NewPair(Config{NFFT: 128, NHop: 256})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestValidatePairDetectsMismatch(t *testing.T) {
	prev := logging.GetGlobalLogger()
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	defer logging.SetGlobalLogger(prev)

	cfg := Config{NFFT: 64, NHop: 16}

	t.Run("different configuration", func(t *testing.T) {
		encoder, err := NewSTFT(cfg, nil)
		require.NoError(t, err)
		decoder, err := NewISTFT(Config{NFFT: 64, NHop: 32}, nil)
		require.NoError(t, err)

		assert.False(t, ValidatePair(encoder, decoder))
	})

	t.Run("different window", func(t *testing.T) {
		encoder, err := NewSTFT(cfg, nil)
		require.NoError(t, err)

		flat := make([]float64, 64)
		for i := range flat {
			flat[i] = 1
		}
		window, err := NewWindow(flat)
		require.NoError(t, err)
		decoder, err := NewISTFT(cfg, window)
		require.NoError(t, err)

		assert.False(t, ValidatePair(encoder, decoder))
	})

	t.Run("equal copies of the window still match", func(t *testing.T) {
		hannA, err := NewHannWindow(64)
		require.NoError(t, err)
		hannB, err := NewHannWindow(64)
		require.NoError(t, err)

		encoder, err := NewSTFT(cfg, hannA)
		require.NoError(t, err)
		decoder, err := NewISTFT(cfg, hannB)
		require.NoError(t, err)

		assert.True(t, ValidatePair(encoder, decoder))
	})
}
