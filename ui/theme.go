package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var ErrUnknownTheme = errors.New("unknown theme")

type Theme int

const (
	Light Theme = iota
	Dark
)

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ToggleLabel is the caption of the button that switches away from t.
func (t Theme) ToggleLabel() string {
	if t == Dark {
		return "Light Mode"
	}
	return "Dark Mode"
}

type Palette struct {
	Background   color.RGBA
	Text         color.RGBA
	MutedText    color.RGBA
	Panel        color.RGBA
	Button       color.RGBA
	ButtonBorder color.RGBA
	LightSquare  color.RGBA
	DarkSquare   color.RGBA
	Highlight    color.RGBA
	WhitePiece   color.RGBA
	BlackPiece   color.RGBA
}

var palettes = map[Theme]Palette{
	Light: {
		Background:   color.RGBA{255, 255, 255, 255},
		Text:         color.RGBA{31, 41, 55, 255},
		MutedText:    color.RGBA{107, 114, 128, 255},
		Panel:        color.RGBA{243, 244, 246, 255},
		Button:       color.RGBA{243, 244, 246, 255},
		ButtonBorder: color.RGBA{156, 163, 175, 255},
		LightSquare:  color.RGBA{240, 217, 181, 255},
		DarkSquare:   color.RGBA{181, 136, 99, 255},
		Highlight:    color.RGBA{255, 255, 0, 153},
		WhitePiece:   color.RGBA{255, 255, 255, 255},
		BlackPiece:   color.RGBA{17, 17, 17, 255},
	},
	Dark: {
		Background:   color.RGBA{17, 24, 39, 255},
		Text:         color.RGBA{243, 244, 246, 255},
		MutedText:    color.RGBA{156, 163, 175, 255},
		Panel:        color.RGBA{31, 41, 55, 255},
		Button:       color.RGBA{31, 41, 55, 255},
		ButtonBorder: color.RGBA{75, 85, 99, 255},
		LightSquare:  color.RGBA{200, 182, 150, 255},
		DarkSquare:   color.RGBA{120, 90, 66, 255},
		Highlight:    color.RGBA{255, 255, 0, 153},
		WhitePiece:   color.RGBA{255, 255, 255, 255},
		BlackPiece:   color.RGBA{17, 17, 17, 255},
	},
}

func (t Theme) Palette() Palette {
	return palettes[t]
}
