package systems

import (
	"fmt"

	cfg "github.com/automoto/jukebox/config"
	"github.com/automoto/jukebox/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawMixerHUD draws volume bars, the engine status line and the key legend
// along the bottom of the screen.
func DrawMixerHUD(e *ecs.ECS, screen *ebiten.Image) {
	height := float64(screen.Bounds().Dy())
	hudFont := fonts.Regular.Get()
	smallFont := fonts.Small.Get()

	margin := cfg.UI.VolumeBarMargin
	barW := cfg.UI.VolumeBarWidth
	barH := cfg.UI.VolumeBarHeight

	drawBar := func(y float64, label string, level float64) {
		if level < 0 {
			level = 0
		}
		if level > 1 {
			level = 1
		}
		vector.FillRect(screen, float32(margin), float32(y), float32(barW), float32(barH), cfg.DarkBlue, false)
		vector.FillRect(screen, float32(margin), float32(y), float32(barW*level), float32(barH), cfg.LightBlue, false)
		text.Draw(screen, label, hudFont, int(margin+barW+6), int(y+barH), cfg.White)
	}

	sfxY := height - margin - barH
	musicY := sfxY - margin - barH

	drawBar(musicY, fmt.Sprintf("music %3.0f%%", GetMusicVolume(e)*100), GetMusicVolume(e))
	drawBar(sfxY, fmt.Sprintf("sfx   %3.0f%%", GetSFXVolume(e)*100), GetSFXVolume(e))

	statusColor := cfg.Green
	if IsMuted(e) {
		statusColor = cfg.Orange
	}
	text.Draw(screen, MusicStatus(e), hudFont, int(margin), int(musicY)-6, statusColor)

	legend := "1-4: tracks   SPACE/H: sfx   S: stop   X: cut   M: mute"
	text.Draw(screen, legend, smallFont, int(margin), int(musicY)-22, cfg.White)
}
