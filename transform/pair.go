package transform

import (
	"github.com/RyanBlaney/sonido-unmix/logging"
)

// NewPair builds an encoder/decoder pair sharing one Hann window instance,
// so the decoder inverts the encoder. With cfg.Center set and a matching
// length passed to the decoder, the pair reconstructs the input up to
// floating-point round-off.
func NewPair(cfg Config) (*STFT, *ISTFT, error) {
	window, err := NewHannWindow(cfg.NFFT)
	if err != nil {
		return nil, nil, err
	}

	encoder, err := NewSTFT(cfg, window)
	if err != nil {
		return nil, nil, err
	}

	decoder, err := NewISTFT(cfg, window)
	if err != nil {
		return nil, nil, err
	}

	return encoder, decoder, nil
}

// ValidatePair reports whether an encoder and decoder agree on configuration
// and carry element-wise identical windows. A mismatch doesn't fail any
// call, but it breaks the reconstruction guarantee, so it is surfaced as a
// warning diagnostic.
func ValidatePair(encoder *STFT, decoder *ISTFT) bool {
	logger := logging.WithFields(logging.Fields{"component": "transform_pair"})

	if encoder.cfg != decoder.cfg {
		logger.Warn("encoder and decoder configuration differ; reconstruction is not guaranteed", logging.Fields{
			"encoder_n_fft": encoder.cfg.NFFT,
			"decoder_n_fft": decoder.cfg.NFFT,
			"encoder_n_hop": encoder.cfg.NHop,
			"decoder_n_hop": decoder.cfg.NHop,
		})
		return false
	}

	if !encoder.window.Matches(decoder.window) {
		logger.Warn("encoder and decoder windows differ; reconstruction is not guaranteed", logging.Fields{
			"encoder_window": encoder.window.Size(),
			"decoder_window": decoder.window.Size(),
		})
		return false
	}

	return true
}
