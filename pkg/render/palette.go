package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// Theme selects the drawing palette.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[Theme]string{
	ThemeLight: "Light",
	ThemeDark:  "Dark",
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	for t, name := range ThemeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return ThemeLight, fmt.Errorf("render: unknown theme %q", s)
}

// Palette holds every color the renderers use.
type Palette struct {
	Background color.NRGBA
	Stator     color.NRGBA
	SlotNumber color.NRGBA
	Label      color.NRGBA
	Axis       color.NRGBA
	SlotStroke color.NRGBA
	SlotFill   color.NRGBA
	MarkerFill color.NRGBA
	Phases     map[winding.Phase]color.NRGBA
}

// Phase belt colors: A reds, B blues, C greens, darker for the negative sense
var phaseColors = map[winding.Phase]color.NRGBA{
	winding.APlus:  {R: 0xe5, G: 0x39, B: 0x35, A: 255},
	winding.AMinus: {R: 0xb7, G: 0x1c, B: 0x1c, A: 255},
	winding.BPlus:  {R: 0x1e, G: 0x88, B: 0xe5, A: 255},
	winding.BMinus: {R: 0x0d, G: 0x47, B: 0xa1, A: 255},
	winding.CPlus:  {R: 0x43, G: 0xa0, B: 0x47, A: 255},
	winding.CMinus: {R: 0x1b, G: 0x5e, B: 0x20, A: 255},
}

// Lighter belt colors that stay readable on a dark background
var darkPhaseColors = map[winding.Phase]color.NRGBA{
	winding.APlus:  {R: 0xef, G: 0x53, B: 0x50, A: 255},
	winding.AMinus: {R: 0xe5, G: 0x73, B: 0x73, A: 255},
	winding.BPlus:  {R: 0x42, G: 0xa5, B: 0xf5, A: 255},
	winding.BMinus: {R: 0x90, G: 0xca, B: 0xf9, A: 255},
	winding.CPlus:  {R: 0x66, G: 0xbb, B: 0x6a, A: 255},
	winding.CMinus: {R: 0xa5, G: 0xd6, B: 0xa7, A: 255},
}

var lightPalette = Palette{
	Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Stator:     color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	SlotNumber: color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255},
	Label:      color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	Axis:       color.NRGBA{R: 0xb4, G: 0xbb, B: 0xcf, A: 255},
	SlotStroke: color.NRGBA{R: 0x7f, G: 0x8a, B: 0xa5, A: 255},
	SlotFill:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	MarkerFill: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Phases:     phaseColors,
}

var darkPalette = Palette{
	Background: color.NRGBA{R: 18, G: 20, B: 26, A: 255},
	Stator:     color.NRGBA{R: 200, G: 205, B: 220, A: 255},
	SlotNumber: color.NRGBA{R: 170, G: 176, B: 192, A: 255},
	Label:      color.NRGBA{R: 233, G: 236, B: 245, A: 255},
	Axis:       color.NRGBA{R: 0x5a, G: 0x62, B: 0x78, A: 255},
	SlotStroke: color.NRGBA{R: 0x9a, G: 0xa4, B: 0xbd, A: 255},
	SlotFill:   color.NRGBA{R: 34, G: 40, B: 50, A: 255},
	MarkerFill: color.NRGBA{R: 34, G: 40, B: 50, A: 255},
	Phases:     darkPhaseColors,
}

// PaletteFor returns the palette of a theme.
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// PhaseColor returns the color of a phase belt, or the label color for
// unknown values.
func (p Palette) PhaseColor(ph winding.Phase) color.NRGBA {
	if c, ok := p.Phases[ph]; ok {
		return c
	}
	return p.Label
}

// Hex formats a color as #rrggbb, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
