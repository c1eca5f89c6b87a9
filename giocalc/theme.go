package main

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/fjl/scicalc/internal/prefs"
)

// calcTheme defines the look of the calculator.
type calcTheme struct {
	Name     string
	Material *material.Theme
	Color    struct {
		Background  color.NRGBA
		Display     color.NRGBA
		Result      color.NRGBA
		Expression  color.NRGBA
		History     color.NRGBA
		Status      color.NRGBA
		Error       color.NRGBA
		Digit       color.NRGBA
		Special     color.NRGBA
		Scientific  color.NRGBA
		Op          color.NRGBA
		ActiveOp    color.NRGBA
		ButtonLabel color.NRGBA
	}
	Size struct {
		Width        unit.Dp
		Height       unit.Dp
		Inset        unit.Dp
		CornerRadius unit.Dp
		History      unit.Sp
		Status       unit.Sp
	}
}

// newCalcTheme creates the theme with the given name. Unknown names give the
// light theme.
func newCalcTheme(name string) *calcTheme {
	th := &calcTheme{Name: name}
	th.Material = material.NewTheme()
	th.Material.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	switch name {
	case prefs.ThemeDark:
		th.Color.Background = color.NRGBA{50, 50, 50, 255}
		th.Color.Display = color.NRGBA{35, 35, 35, 255}
		th.Color.Result = color.NRGBA{255, 255, 255, 255}
		th.Color.Expression = color.NRGBA{200, 200, 200, 255}
		th.Color.History = color.NRGBA{130, 130, 130, 255}
		th.Color.Status = color.NRGBA{119, 119, 119, 255}
		th.Color.Error = color.NRGBA{255, 119, 119, 255}
		th.Color.Digit = color.NRGBA{90, 90, 90, 255}
		th.Color.Special = color.NRGBA{70, 70, 70, 255}
		th.Color.Scientific = color.NRGBA{60, 70, 80, 255}
		th.Color.Op = color.NRGBA{122, 90, 90, 255}
		th.Color.ActiveOp = color.NRGBA{160, 90, 90, 255}
		th.Color.ButtonLabel = color.NRGBA{255, 255, 255, 255}
	default:
		th.Name = prefs.ThemeLight
		th.Color.Background = color.NRGBA{245, 245, 245, 255}
		th.Color.Display = color.NRGBA{255, 255, 255, 255}
		th.Color.Result = color.NRGBA{77, 77, 77, 255}
		th.Color.Expression = color.NRGBA{119, 119, 119, 255}
		th.Color.History = color.NRGBA{170, 170, 170, 255}
		th.Color.Status = color.NRGBA{119, 119, 119, 255}
		th.Color.Error = color.NRGBA{175, 47, 47, 255}
		th.Color.Digit = color.NRGBA{225, 225, 225, 255}
		th.Color.Special = color.NRGBA{205, 205, 205, 255}
		th.Color.Scientific = color.NRGBA{200, 215, 225, 255}
		th.Color.Op = color.NRGBA{93, 194, 175, 255}
		th.Color.ActiveOp = color.NRGBA{60, 160, 140, 255}
		th.Color.ButtonLabel = color.NRGBA{50, 50, 50, 255}
	}
	th.Material.Palette.Bg = th.Color.Background
	th.Material.Palette.Fg = th.Color.Result

	// Sizes.
	th.Size.Width = 300
	th.Size.Height = 480
	th.Size.Inset = 6
	th.Size.CornerRadius = 3.5
	th.Size.History = 14
	th.Size.Status = 12
	return th
}

// toggled returns the other theme.
func (th *calcTheme) toggled() *calcTheme {
	if th.Name == prefs.ThemeDark {
		return newCalcTheme(prefs.ThemeLight)
	}
	return newCalcTheme(prefs.ThemeDark)
}

// buttonColor returns the background of a keypad button.
func (th *calcTheme) buttonColor(k keyKind, active bool) color.NRGBA {
	switch {
	case active:
		return th.Color.ActiveOp
	case k == kindDigit:
		return th.Color.Digit
	case k == kindOp:
		return th.Color.Op
	case k == kindScientific:
		return th.Color.Scientific
	default:
		return th.Color.Special
	}
}
