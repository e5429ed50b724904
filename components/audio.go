package components

import (
	"github.com/automoto/jukebox/audio"
	"github.com/yohamta/donburi"
)

// AudioData stores global audio state (singleton component)
type AudioData struct {
	Engine  *audio.Engine
	Effects *audio.EffectPool
	Library *audio.Library

	// Effects queued this frame, drained by the audio system
	PendingSFX []string

	Muted           bool
	PreMuteMusicVol float64
	PreMuteSFXVol   float64
}

var Audio = donburi.NewComponentType[AudioData]()
