package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/automoto/jukebox/audio"
	"github.com/automoto/jukebox/systems"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/gofont/goregular"
)

// volumeStep is how much one +/- click moves a channel
const volumeStep = 0.05

// MixerUI holds the ebitenui mixer panel: track triggers, transition policy
// selection, effect triggers and volume controls.
type MixerUI struct {
	UI  *ebitenui.UI
	ecs *ecs.ECS

	// Policy applied to the next track button click
	policy audio.Transition

	// Widget references for updates
	policyLabel   *widget.Label
	statusLabel   *widget.Label
	musicVolLabel *widget.Label
	sfxVolLabel   *widget.Label
	muteButton    *widget.Button

	// Fonts (stored as interface for ebitenui compatibility)
	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewMixerUI creates the mixer panel for the given world. Track and effect
// buttons are built from whatever the library holds at construction time.
func NewMixerUI(e *ecs.ECS, tracks, effects []string) *MixerUI {
	mui := &MixerUI{
		ecs:    e,
		policy: audio.Crossfade,
	}

	mui.loadFonts()
	mui.buildUI(tracks, effects)

	return mui
}

func (mui *MixerUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	// Store as text.Face interface for ebitenui compatibility
	mui.titleFace = &text.GoTextFace{
		Source: fontSource,
		Size:   18,
	}
	mui.normalFace = &text.GoTextFace{
		Source: fontSource,
		Size:   12,
	}
	mui.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   10,
	}
}

func (mui *MixerUI) buildUI(tracks, effects []string) {
	// Root container with AnchorLayout to fill the screen
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	// Content container with vertical layout, compact for a 640x360 screen
	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	titleLabel := widget.NewLabel(
		widget.LabelOpts.Text("JUKEBOX MIXER", &mui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
	contentContainer.AddChild(titleLabel)

	contentContainer.AddChild(mui.buildPolicyRow())
	contentContainer.AddChild(mui.buildTrackRow(tracks))
	contentContainer.AddChild(mui.buildEffectRow(effects))
	contentContainer.AddChild(mui.buildVolumeRow())

	// Status label
	mui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &mui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{180, 255, 180, 255},
		}),
	)
	contentContainer.AddChild(mui.statusLabel)

	rootContainer.AddChild(contentContainer)

	mui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (mui *MixerUI) buildPolicyRow() *widget.Container {
	container := mui.newRow()

	mui.policyLabel = widget.NewLabel(
		widget.LabelOpts.Text(mui.policy.String(), &mui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{255, 180, 50, 255},
		}),
	)

	for _, policy := range []audio.Transition{
		audio.Crossfade,
		audio.FadeOutThenStart,
		audio.StopAndFadeIn,
		audio.StopAndStart,
	} {
		policy := policy
		container.AddChild(mui.newButton(policy.String(), func() {
			mui.policy = policy
		}))
	}
	container.AddChild(mui.policyLabel)

	return container
}

func (mui *MixerUI) buildTrackRow(tracks []string) *widget.Container {
	container := mui.newRow()

	for _, id := range tracks {
		id := id
		container.AddChild(mui.newButton(id, func() {
			systems.PlayMusic(mui.ecs, id, mui.policy)
		}))
	}
	container.AddChild(mui.newButton("stop", func() {
		systems.StopMusic(mui.ecs)
	}))
	container.AddChild(mui.newButton("stop now", func() {
		systems.StopMusicNow(mui.ecs)
	}))

	return container
}

func (mui *MixerUI) buildEffectRow(effects []string) *widget.Container {
	container := mui.newRow()

	for _, id := range effects {
		id := id
		container.AddChild(mui.newButton("sfx: "+id, func() {
			systems.PlaySFX(mui.ecs, id)
		}))
	}

	return container
}

func (mui *MixerUI) buildVolumeRow() *widget.Container {
	container := mui.newRow()

	mui.musicVolLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &mui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
	mui.sfxVolLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &mui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)

	container.AddChild(mui.newButton("music -", func() {
		systems.SetMusicVolume(mui.ecs, systems.GetMusicVolume(mui.ecs)-volumeStep)
	}))
	container.AddChild(mui.newButton("music +", func() {
		systems.SetMusicVolume(mui.ecs, systems.GetMusicVolume(mui.ecs)+volumeStep)
	}))
	container.AddChild(mui.musicVolLabel)

	container.AddChild(mui.newButton("sfx -", func() {
		systems.SetSFXVolume(mui.ecs, systems.GetSFXVolume(mui.ecs)-volumeStep)
	}))
	container.AddChild(mui.newButton("sfx +", func() {
		systems.SetSFXVolume(mui.ecs, systems.GetSFXVolume(mui.ecs)+volumeStep)
	}))
	container.AddChild(mui.sfxVolLabel)

	mui.muteButton = mui.newButton("mute", func() {
		systems.ToggleMute(mui.ecs)
	})
	container.AddChild(mui.muteButton)

	return container
}

func (mui *MixerUI) newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
}

func (mui *MixerUI) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(70, 20),
		),
		widget.ButtonOpts.Image(mui.buttonImage()),
		widget.ButtonOpts.Text(label, &mui.smallFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (mui *MixerUI) buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(color.RGBA{60, 60, 80, 255})
	hover := image.NewNineSliceColor(color.RGBA{80, 80, 100, 255})
	pressed := image.NewNineSliceColor(color.RGBA{40, 40, 60, 255})
	disabled := image.NewNineSliceColor(color.RGBA{40, 40, 40, 255})

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}

// UpdateUI refreshes labels to reflect current mixer state
func (mui *MixerUI) UpdateUI() {
	if mui.policyLabel != nil {
		mui.policyLabel.Label = mui.policy.String()
	}
	if mui.statusLabel != nil {
		mui.statusLabel.Label = systems.MusicStatus(mui.ecs)
	}
	if mui.musicVolLabel != nil {
		mui.musicVolLabel.Label = fmt.Sprintf("%.0f%%", systems.GetMusicVolume(mui.ecs)*100)
	}
	if mui.sfxVolLabel != nil {
		mui.sfxVolLabel.Label = fmt.Sprintf("%.0f%%", systems.GetSFXVolume(mui.ecs)*100)
	}
	if mui.muteButton != nil {
		if textWidget := mui.muteButton.Text(); textWidget != nil {
			if systems.IsMuted(mui.ecs) {
				textWidget.Label = "unmute"
			} else {
				textWidget.Label = "mute"
			}
		}
	}
}
