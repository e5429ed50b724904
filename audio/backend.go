package audio

// Source is a playable audio buffer owned by the host audio layer.
// The engine never touches sample data; it only spawns voices.
type Source interface {
	NewVoice(opts VoiceOptions) (Voice, error)
}

// VoiceOptions configure a voice at creation time.
type VoiceOptions struct {
	// Loop makes the voice restart from the beginning on its own when it
	// reaches the end of the buffer.
	Loop bool

	// Pitch is a playback-rate multiplier. Values <= 0 mean 1.0.
	Pitch float64
}

// Voice is a single playback instance of a Source.
type Voice interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(v float64)
	IsPlaying() bool
}
