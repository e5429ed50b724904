package fonts

import (
	"fmt"

	cfg "github.com/automoto/jukebox/config"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Title   FontName = "title"
	Small   FontName = "small"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the built-in Go font at the configured HUD sizes
func LoadDefaults() {
	LoadFontWithSize(Regular, goregular.TTF, cfg.UI.HUDFontSize)
	LoadFontWithSize(Title, goregular.TTF, cfg.UI.TitleFontSize)
	LoadFontWithSize(Small, goregular.TTF, cfg.UI.SmallFontSize)
}

func LoadFont(name FontName, ttf []byte) {
	LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, _ := truetype.Parse(ttf)
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
