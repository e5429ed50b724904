// Package ebitenaudio implements the audio backend contract on top of
// ebiten's audio players. Sources hold decoded PCM (16-bit little endian
// stereo at the context sample rate); every voice is an independent player
// over that buffer.
package ebitenaudio

import (
	"bytes"
	"io"

	"github.com/automoto/jukebox/audio"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// PCMSource is a decoded audio buffer that can spawn ebiten players.
type PCMSource struct {
	context *eaudio.Context
	data    []byte
}

// NewPCMSource wraps decoded PCM bytes as a voice source.
func NewPCMSource(ctx *eaudio.Context, data []byte) *PCMSource {
	return &PCMSource{context: ctx, data: data}
}

// NewVoice creates a player for the buffer. Looping uses ebiten's infinite
// loop stream; a non-unit pitch routes through the resampling reader, which
// is not seekable (pitched voices cannot be rewound).
func (s *PCMSource) NewVoice(opts audio.VoiceOptions) (audio.Voice, error) {
	var stream io.Reader
	switch {
	case opts.Loop:
		stream = eaudio.NewInfiniteLoop(bytes.NewReader(s.data), int64(len(s.data)))
	case opts.Pitch > 0 && opts.Pitch != 1.0:
		stream = newPitchReader(s.data, opts.Pitch)
	default:
		stream = bytes.NewReader(s.data)
	}

	player, err := s.context.NewPlayer(stream)
	if err != nil {
		return nil, err
	}
	return &voice{player: player}, nil
}

type voice struct {
	player *eaudio.Player
}

func (v *voice) Play() {
	v.player.Play()
}

func (v *voice) Pause() {
	v.player.Pause()
}

func (v *voice) Rewind() error {
	return v.player.Rewind()
}

func (v *voice) SetVolume(vol float64) {
	v.player.SetVolume(vol)
}

func (v *voice) IsPlaying() bool {
	return v.player.IsPlaying()
}
