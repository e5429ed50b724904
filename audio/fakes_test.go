package audio

import (
	"errors"
	"math"
)

// fakeVoice records playback calls so tests can observe channel behavior
// without a sound card.
type fakeVoice struct {
	playing bool
	volume  float64
	loop    bool
	pitch   float64

	playCalls   int
	rewindCalls int
	rewindErr   error
}

func (v *fakeVoice) Play() {
	v.playing = true
	v.playCalls++
}

func (v *fakeVoice) Pause() {
	v.playing = false
}

func (v *fakeVoice) Rewind() error {
	v.rewindCalls++
	return v.rewindErr
}

func (v *fakeVoice) SetVolume(vol float64) {
	v.volume = vol
}

func (v *fakeVoice) IsPlaying() bool {
	return v.playing
}

// finish simulates the voice reaching the natural end of its buffer.
func (v *fakeVoice) finish() {
	v.playing = false
}

type fakeSource struct {
	voices []*fakeVoice
	err    error
}

var errFakeBackend = errors.New("backend unavailable")

func (s *fakeSource) NewVoice(opts VoiceOptions) (Voice, error) {
	if s.err != nil {
		return nil, s.err
	}
	pitch := opts.Pitch
	if pitch <= 0 {
		pitch = 1.0
	}
	v := &fakeVoice{loop: opts.Loop, pitch: pitch}
	s.voices = append(s.voices, v)
	return v, nil
}

func (s *fakeSource) lastVoice() *fakeVoice {
	if len(s.voices) == 0 {
		return nil
	}
	return s.voices[len(s.voices)-1]
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// tick advances the engine n times by dt.
func tick(e *Engine, n int, dt float64) {
	for i := 0; i < n; i++ {
		e.Tick(dt)
	}
}
