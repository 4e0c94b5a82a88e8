package theme

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ThemedRectangle is a rectangle filled with a theme color that
// follows theme changes.
type ThemedRectangle struct {
	widget.BaseWidget

	ColorName fyne.ThemeColorName

	rect *canvas.Rectangle
}

func NewThemedRectangle(colorName fyne.ThemeColorName) *ThemedRectangle {
	t := &ThemedRectangle{
		ColorName: colorName,
		rect:      canvas.NewRectangle(theme.Color(colorName)),
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *ThemedRectangle) Refresh() {
	t.rect.FillColor = theme.Color(t.ColorName)
	t.BaseWidget.Refresh()
}

func (t *ThemedRectangle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}
