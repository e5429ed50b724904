package main

import (
	"image"
	"log"

	"github.com/automoto/jukebox/assets"
	"github.com/automoto/jukebox/config"
	"github.com/automoto/jukebox/fonts"
	"github.com/automoto/jukebox/systems"
	"github.com/automoto/jukebox/ui"
	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type Game struct {
	bounds image.Rectangle
	ecs    *ecs.ECS
	mixer  *ui.MixerUI
}

func NewGame() *Game {
	fonts.LoadDefaults()

	ctx := eaudio.NewContext(config.Audio.SampleRate)
	library := assets.DemoLibrary(ctx)

	world := donburi.NewWorld()
	e := ecs.NewECS(world)
	e.AddSystem(systems.UpdateAudio)

	systems.SetupAudio(e, library)
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(e, saved)
	}

	g := &Game{
		bounds: image.Rectangle{},
		ecs:    e,
	}
	g.mixer = ui.NewMixerUI(e, library.TrackIDs(), library.EffectIDs())
	return g
}

// Keyboard shortcuts mirror the mixer panel buttons. Each track key carries
// its own transition so all four policies are one keystroke away.
func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		systems.PlayMusicSpec(g.ecs, "ambient|Crossfade")
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		systems.PlayMusicSpec(g.ecs, "battle|FadeOutThenStart")
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		systems.PlayMusicSpec(g.ecs, "jingle|StopAndFadeIn")
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		systems.PlayMusicSpec(g.ecs, "stinger|StopAndStart")
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		systems.PlaySFX(g.ecs, "click")
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		systems.PlaySFX(g.ecs, "hit")
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		systems.StopMusic(g.ecs)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		systems.StopMusicNow(g.ecs)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		systems.ToggleMute(g.ecs)
		systems.SaveCurrentSettings(g.ecs)
	}
}

func (g *Game) Update() error {
	g.handleKeys()
	g.ecs.Update()
	g.mixer.UI.Update()
	g.mixer.UpdateUI()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(config.UI.BackgroundColor)
	g.mixer.UI.Draw(screen)
	systems.DrawMixerHUD(g.ecs, screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
