package config

import "image/color"

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// UIConfig contains HUD layout and color values for the demo mixer
type UIConfig struct {
	BackgroundColor color.RGBA

	// Volume bar dimensions
	VolumeBarWidth  float64
	VolumeBarHeight float64
	VolumeBarMargin float64

	// Font sizes
	TitleFontSize float64
	HUDFontSize   float64
	SmallFontSize float64
}

// Global configuration instances
var C *Config
var UI UIConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "Jukebox",
	}

	UI = UIConfig{
		BackgroundColor: color.RGBA{R: 15, G: 25, B: 50, A: 255},

		VolumeBarWidth:  120,
		VolumeBarHeight: 10,
		VolumeBarMargin: 10,

		TitleFontSize: 18,
		HUDFontSize:   12,
		SmallFontSize: 10,
	}
}
