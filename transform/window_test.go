package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHannWindow(t *testing.T) {
	window, err := NewHannWindow(8)
	require.NoError(t, err)
	require.Equal(t, 8, window.Size())

	coeffs := window.Coefficients()
	require.Len(t, coeffs, 8)

	// Symmetric Hann: w[k] = 0.5*(1 - cos(2*pi*k/(n-1)))
	for k, c := range coeffs {
		expected := 0.5 * (1.0 - math.Cos(2*math.Pi*float64(k)/7.0))
		assert.InDelta(t, expected, c, 1e-15)
	}

	// Endpoints vanish, symmetry holds
	assert.Equal(t, 0.0, coeffs[0])
	assert.InDelta(t, 0.0, coeffs[7], 1e-15)
	for k := 0; k < 4; k++ {
		assert.InDelta(t, coeffs[7-k], coeffs[k], 1e-15)
	}

	// Non-negative everywhere
	for _, c := range coeffs {
		assert.GreaterOrEqual(t, c, 0.0)
	}
}

func TestNewHannWindowRejectsInvalidSize(t *testing.T) {
	_, err := NewHannWindow(0)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewHannWindow(-4)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestNewWindowCopiesCoefficients(t *testing.T) {
	coeffs := []float64{0.25, 0.5, 0.5, 0.25}
	window, err := NewWindow(coeffs)
	require.NoError(t, err)

	// Mutating the source must not reach the window
	coeffs[0] = 100
	assert.Equal(t, 0.25, window.Coefficients()[0])

	// Mutating the returned copy must not reach the window either
	out := window.Coefficients()
	out[1] = -1
	assert.Equal(t, 0.5, window.Coefficients()[1])
}

func TestNewWindowRejectsEmpty(t *testing.T) {
	_, err := NewWindow(nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWindowMatches(t *testing.T) {
	a, err := NewHannWindow(16)
	require.NoError(t, err)
	b, err := NewHannWindow(16)
	require.NoError(t, err)
	c, err := NewHannWindow(8)
	require.NoError(t, err)

	assert.True(t, a.Matches(a))
	assert.True(t, a.Matches(b), "independently built Hann windows of equal size are element-wise identical")
	assert.False(t, a.Matches(c))
	assert.False(t, a.Matches(nil))

	d, err := NewWindow([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.False(t, a.Matches(d))
}
