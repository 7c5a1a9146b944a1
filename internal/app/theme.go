package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"calgrid/pkg/colorutil"
)

// AdjusterTheme is the adjuster window theme, with the start-cell blue as
// its primary colour.
type AdjusterTheme struct{}

var _ fyne.Theme = (*AdjusterTheme)(nil)

func (t *AdjusterTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.StartCell
	case theme.ColorNameSuccess:
		return colorutil.Save
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *AdjusterTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *AdjusterTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *AdjusterTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameSeparatorThickness:
		return 2
	default:
		return theme.DefaultTheme().Size(name)
	}
}
