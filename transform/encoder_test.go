package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudioEncoderValidation(t *testing.T) {
	_, err := NewAudioEncoder(4096, 1024, 0, 2)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewAudioEncoder(4096, 1024, 44100, 0)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewAudioEncoder(1024, 2048, 44100, 2)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestAudioEncoderMonoDownmix(t *testing.T) {
	// A 1-channel configuration downmixes, a 2-channel one keeps channels
	monoEnc, err := NewAudioEncoder(256, 64, 44100, 1)
	require.NoError(t, err)
	stereoEnc, err := NewAudioEncoder(256, 64, 44100, 2)
	require.NoError(t, err)

	x := randomWaveform(2, 2, 1024, 13)

	monoMag, err := monoEnc.Encode(x)
	require.NoError(t, err)
	stereoMag, err := stereoEnc.Encode(x)
	require.NoError(t, err)

	require.Len(t, monoMag[0], 1)
	require.Len(t, stereoMag[0], 2)

	frames, err := monoEnc.STFT().FrameCount(1024)
	require.NoError(t, err)
	require.Len(t, monoMag[0][0], frames)
	require.Len(t, monoMag[0][0][0], 129)
}

func TestAudioEncoderMatchesStages(t *testing.T) {
	enc, err := NewAudioEncoder(128, 32, 44100, 2)
	require.NoError(t, err)

	x := randomWaveform(1, 2, 512, 29)

	got, err := enc.Encode(x)
	require.NoError(t, err)

	spec, err := enc.STFT().Transform(x)
	require.NoError(t, err)
	want, err := NewComplexNorm(false).Transform(spec)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestAudioEncoderAccessors(t *testing.T) {
	enc, err := NewAudioEncoder(4096, 1024, 44100, 2)
	require.NoError(t, err)

	assert.Equal(t, 44100, enc.SampleRate())
	assert.Equal(t, 2, enc.Channels())
	assert.Equal(t, Config{NFFT: 4096, NHop: 1024, Center: false}, enc.STFT().Config())
}
