package systems

import (
	"fmt"
	"log"

	"github.com/automoto/jukebox/audio"
	"github.com/automoto/jukebox/components"
	cfg "github.com/automoto/jukebox/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// SetupAudio creates the singleton audio entity wired to the given library.
// Volumes start at the config defaults; saved settings are applied on top by
// the persistence system.
func SetupAudio(e *ecs.ECS, library *audio.Library) *components.AudioData {
	engine := audio.NewEngine(library)
	engine.SetVolume(cfg.Audio.DefaultMusicVol)

	effects := audio.NewEffectPool(cfg.Audio.SFXPoolSize)
	effects.SetVolume(cfg.Audio.DefaultSFXVol)

	entry := e.World.Entry(e.World.Create(components.Audio))
	components.Audio.SetValue(entry, components.AudioData{
		Engine:     engine,
		Effects:    effects,
		Library:    library,
		PendingSFX: make([]string, 0, 8),
	})
	return components.Audio.Get(entry)
}

// getAudio returns the singleton audio data, or nil when SetupAudio has not
// run for this world.
func getAudio(e *ecs.ECS) *components.AudioData {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return nil
	}
	return components.Audio.Get(entry)
}

// UpdateAudio drains queued effects and advances the music engine by one
// frame. Runs once per tick from the ECS update loop.
func UpdateAudio(e *ecs.ECS) {
	a := getAudio(e)
	if a == nil {
		return
	}

	for _, id := range a.PendingSFX {
		ef, ok := a.Library.Effect(id)
		if !ok {
			log.Printf("Warning: unknown sound effect %q", id)
			continue
		}
		a.Effects.Play(ef)
	}
	a.PendingSFX = a.PendingSFX[:0]

	a.Engine.Tick(1.0 / float64(ebiten.TPS()))
}

// PlaySFX queues a sound effect to be played on the next update
func PlaySFX(e *ecs.ECS, id string) {
	a := getAudio(e)
	if a == nil {
		return
	}
	a.PendingSFX = append(a.PendingSFX, id)
}

// PlayMusic requests a music transition to the named track
func PlayMusic(e *ecs.ECS, trackID string, policy audio.Transition) {
	if a := getAudio(e); a != nil {
		a.Engine.PlayMusic(trackID, policy)
	}
}

// PlayMusicSpec requests music by "track|policy" spec string
func PlayMusicSpec(e *ecs.ECS, spec string) {
	if a := getAudio(e); a != nil {
		a.Engine.PlayMusicSpec(spec)
	}
}

// StopMusic fades the current track out and leaves the engine silent
func StopMusic(e *ecs.ECS) {
	if a := getAudio(e); a != nil {
		a.Engine.StopMusic(true)
	}
}

// StopMusicNow cuts the current track without a fade
func StopMusicNow(e *ecs.ECS) {
	if a := getAudio(e); a != nil {
		a.Engine.StopMusic(false)
	}
}

// SetMusicVolume changes the music volume (0.0 - 1.0)
func SetMusicVolume(e *ecs.ECS, volume float64) {
	if a := getAudio(e); a != nil {
		a.Engine.SetVolume(volume)
	}
}

// SetSFXVolume changes the effect volume (0.0 - 1.0)
func SetSFXVolume(e *ecs.ECS, volume float64) {
	if a := getAudio(e); a != nil {
		a.Effects.SetVolume(volume)
	}
}

// GetMusicVolume returns the current music volume (0.0 - 1.0)
func GetMusicVolume(e *ecs.ECS) float64 {
	if a := getAudio(e); a != nil {
		return a.Engine.Volume()
	}
	return cfg.Audio.DefaultMusicVol
}

// GetSFXVolume returns the current effect volume (0.0 - 1.0)
func GetSFXVolume(e *ecs.ECS) float64 {
	if a := getAudio(e); a != nil {
		return a.Effects.Volume()
	}
	return cfg.Audio.DefaultSFXVol
}

// ToggleMute silences both channels, remembering the previous volumes so a
// second toggle restores them.
func ToggleMute(e *ecs.ECS) {
	a := getAudio(e)
	if a == nil {
		return
	}

	if a.Muted {
		a.Engine.SetVolume(a.PreMuteMusicVol)
		a.Effects.SetVolume(a.PreMuteSFXVol)
		a.Muted = false
		return
	}

	a.PreMuteMusicVol = a.Engine.Volume()
	a.PreMuteSFXVol = a.Effects.Volume()
	a.Engine.SetVolume(0)
	a.Effects.SetVolume(0)
	a.Muted = true
}

// IsMuted reports whether ToggleMute has silenced the mixer
func IsMuted(e *ecs.ECS) bool {
	if a := getAudio(e); a != nil {
		return a.Muted
	}
	return false
}

// MusicStatus returns a one-line description of the engine for the HUD
func MusicStatus(e *ecs.ECS) string {
	a := getAudio(e)
	if a == nil {
		return "audio not ready"
	}

	state := a.Engine.State()
	if state == audio.StateIdle {
		return "idle"
	}
	return fmt.Sprintf("%s: %s", state, a.Engine.CurrentTrackName())
}

// ShutdownAudio silences everything immediately, for window close
func ShutdownAudio(e *ecs.ECS) {
	if a := getAudio(e); a != nil {
		a.Engine.Shutdown()
	}
}
