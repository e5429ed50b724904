package audio

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// LoopMode controls what happens when a track reaches its natural end.
type LoopMode int

const (
	// LoopInfinite loops forever using the backend's native looping.
	LoopInfinite LoopMode = iota
	// LoopNone plays the track once and then goes silent.
	LoopNone
	// LoopFinite replays the track LoopCount extra times, then goes silent.
	LoopFinite
)

// Transition selects how playback moves from the current track to a new one.
type Transition int

const (
	// Crossfade fades the old track out while the new one fades in.
	Crossfade Transition = iota
	// FadeOutThenStart fades the old track to silence, then starts the new one.
	FadeOutThenStart
	// StopAndFadeIn cuts the old track and fades the new one in.
	StopAndFadeIn
	// StopAndStart cuts the old track and starts the new one at full volume.
	StopAndStart
)

func (t Transition) String() string {
	switch t {
	case Crossfade:
		return "Crossfade"
	case FadeOutThenStart:
		return "FadeOutThenStart"
	case StopAndFadeIn:
		return "StopAndFadeIn"
	case StopAndStart:
		return "StopAndStart"
	}
	return "Unknown"
}

// ParseTransition maps a transition name to its value. Unknown names fall
// back to FadeOutThenStart so a bad request still changes the music.
func ParseTransition(name string) Transition {
	switch strings.TrimSpace(name) {
	case "Crossfade":
		return Crossfade
	case "FadeOutThenStart":
		return FadeOutThenStart
	case "StopAndFadeIn":
		return StopAndFadeIn
	case "StopAndStart":
		return StopAndStart
	}
	return FadeOutThenStart
}

// Track describes a piece of music and its fade/loop behavior.
// Tracks are read-only to the engine; build them once and register them
// with a Library.
type Track struct {
	ID     string
	Source Source

	// VolumeScale is the track's base volume (0.0 - 1.0), multiplied by the
	// engine's music volume.
	VolumeScale float64

	Loop      LoopMode
	LoopCount int // extra plays for LoopFinite

	FadeIn         bool
	FadeInSeconds  float64
	FadeOutSeconds float64

	// Ease shapes volume ramps for this track. Nil means linear.
	Ease ease.TweenFunc
}

func (t *Track) easing() ease.TweenFunc {
	if t.Ease == nil {
		return ease.Linear
	}
	return t.Ease
}

// fadeInSeconds returns the effective fade-in duration, zero when the track
// has fading in disabled.
func (t *Track) fadeInSeconds() float64 {
	if !t.FadeIn || t.FadeInSeconds <= 0 {
		return 0
	}
	return t.FadeInSeconds
}

// Effect describes a one-shot sound effect for the EffectPool.
type Effect struct {
	ID     string
	Source Source

	// VolumeScale is the default playback volume (0.0 - 1.0).
	VolumeScale float64

	// PitchMin/PitchMax bound the random pitch applied per play.
	// Zero values mean no pitch variation.
	PitchMin float64
	PitchMax float64
}
