package transform

import "fmt"

// Default transform parameters
const (
	DefaultNFFT = 4096
	DefaultNHop = 1024
)

// Config holds the immutable parameters shared by an encoder/decoder pair.
// Center controls whether signals are reflect-padded so that frame t is
// centered at sample t*NHop. Centering is required for exact-length
// reconstruction; leaving it off reduces edge distortion during
// training-time use.
type Config struct {
	NFFT   int  `json:"n_fft"`
	NHop   int  `json:"n_hop"`
	Center bool `json:"center"`
}

// DefaultConfig returns the default transform configuration
func DefaultConfig() Config {
	return Config{
		NFFT:   DefaultNFFT,
		NHop:   DefaultNHop,
		Center: false,
	}
}

// Validate checks the configuration at construction time
func (c Config) Validate() error {
	if c.NFFT <= 0 {
		return NewConfigError(fmt.Sprintf("n_fft must be positive, got %d", c.NFFT))
	}
	if c.NHop <= 0 {
		return NewConfigError(fmt.Sprintf("n_hop must be positive, got %d", c.NHop))
	}
	if c.NHop > c.NFFT {
		return NewConfigError(fmt.Sprintf("n_hop (%d) must not exceed n_fft (%d)", c.NHop, c.NFFT))
	}
	return nil
}

// Bins returns the number of one-sided frequency bins
func (c Config) Bins() int {
	return c.NFFT/2 + 1
}

// pad returns the per-side padding applied when Center is set
func (c Config) pad() int {
	return c.NFFT / 2
}
