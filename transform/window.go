package transform

import (
	"fmt"
	"math"
)

// Window holds one fixed real-valued analysis window. An encoder/decoder
// pair intended to invert one another must share the same Window instance
// or element-wise identical copies.
type Window struct {
	size         int
	coefficients []float64
}

// NewHannWindow creates a symmetric Hann window of the given size
func NewHannWindow(size int) (*Window, error) {
	if size <= 0 {
		return nil, NewConfigError(fmt.Sprintf("window size must be positive, got %d", size))
	}

	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1.0
	} else {
		denominator := float64(size - 1)
		for i := 0; i < size; i++ {
			coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
		}
	}

	return &Window{size: size, coefficients: coefficients}, nil
}

// NewWindow creates a window from externally supplied coefficients.
// The coefficients are copied; the window never mutates after construction.
func NewWindow(coefficients []float64) (*Window, error) {
	if len(coefficients) == 0 {
		return nil, NewConfigError("window coefficients must not be empty")
	}

	copied := make([]float64, len(coefficients))
	copy(copied, coefficients)
	return &Window{size: len(copied), coefficients: copied}, nil
}

// Size returns the window length
func (w *Window) Size() int {
	return w.size
}

// Coefficients returns a copy of the window coefficients
func (w *Window) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// Matches reports whether two windows are element-wise identical
func (w *Window) Matches(other *Window) bool {
	if other == nil || w.size != other.size {
		return false
	}
	if w == other {
		return true
	}
	for i := range w.coefficients {
		if w.coefficients[i] != other.coefficients[i] {
			return false
		}
	}
	return true
}

// applyTo multiplies a frame by the window in place.
// The frame length must equal the window size.
func (w *Window) applyTo(frame []float64) {
	for i := range frame {
		frame[i] *= w.coefficients[i]
	}
}
