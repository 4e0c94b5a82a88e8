package widgets

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/reelplayer/reel/ui/shortcuts"
	myTheme "github.com/reelplayer/reel/ui/theme"
)

const placeholderText = "Drop files here or use File > Open"

var (
	_ desktop.Mouseable   = (*NowPlaying)(nil)
	_ fyne.DoubleTappable = (*NowPlaying)(nil)
	_ fyne.Scrollable     = (*NowPlaying)(nil)
)

// NowPlaying shows a thumbnail of the current video frame over a
// background tinted with its dominant color. Mouse input on it is
// reported as binding triggers.
type NowPlaying struct {
	widget.BaseWidget

	OnMouseTrigger func(keybind.MouseTrigger)

	background *canvas.Rectangle
	tint       *canvas.Rectangle
	image      *canvas.Image
	title      *widget.Label
	status     *widget.Label

	container *fyne.Container
}

func NewNowPlaying() *NowPlaying {
	n := &NowPlaying{
		background: canvas.NewRectangle(theme.Color(myTheme.ColorNameNowPlayingBackground)),
		tint:       canvas.NewRectangle(color.Transparent),
		image:      canvas.NewImageFromImage(nil),
		title:      widget.NewLabel(""),
		status:     widget.NewLabel(placeholderText),
	}
	n.ExtendBaseWidget(n)
	n.image.FillMode = canvas.ImageFillContain
	n.image.ScaleMode = canvas.ImageScaleSmooth
	n.title.Alignment = fyne.TextAlignCenter
	n.title.TextStyle.Bold = true
	n.title.Truncation = fyne.TextTruncateEllipsis
	n.status.Alignment = fyne.TextAlignCenter
	n.status.Importance = widget.LowImportance

	n.container = container.NewStack(
		n.background,
		n.tint,
		container.NewBorder(nil, container.NewVBox(n.title, n.status), nil, nil,
			container.NewPadded(n.image)),
	)
	return n
}

// SetArtwork shows img over a background tinted with c.
// A nil image clears both.
func (n *NowPlaying) SetArtwork(img image.Image, c color.Color) {
	n.image.Image = img
	n.image.Refresh()
	if img == nil {
		n.tint.FillColor = color.Transparent
	} else {
		n.tint.FillColor = myTheme.BlendColors(c, color.Transparent, 0.45)
	}
	n.tint.Refresh()
}

func (n *NowPlaying) SetTitle(title string) {
	n.title.SetText(title)
}

// SetStatus sets the line under the title. An empty status shows
// the placeholder when nothing is loaded.
func (n *NowPlaying) SetStatus(status string, loaded bool) {
	if status == "" && !loaded {
		status = placeholderText
	}
	n.status.SetText(status)
}

func (n *NowPlaying) MouseDown(e *desktop.MouseEvent) {
	if t, ok := shortcuts.TriggerForMouse(e.Button, e.Modifier, false); ok {
		n.sendTrigger(t)
	}
}

func (n *NowPlaying) MouseUp(*desktop.MouseEvent) {}

func (n *NowPlaying) DoubleTapped(*fyne.PointEvent) {
	if t, ok := shortcuts.TriggerForMouse(desktop.MouseButtonPrimary, shortcuts.CurrentModifiers(), true); ok {
		n.sendTrigger(t)
	}
}

func (n *NowPlaying) Scrolled(e *fyne.ScrollEvent) {
	if t, ok := shortcuts.TriggerForScroll(e.Scrolled.DY, shortcuts.CurrentModifiers()); ok {
		n.sendTrigger(t)
	}
}

func (n *NowPlaying) sendTrigger(t keybind.MouseTrigger) {
	if n.OnMouseTrigger != nil {
		n.OnMouseTrigger(t)
	}
}

func (n *NowPlaying) Refresh() {
	n.background.FillColor = theme.Color(myTheme.ColorNameNowPlayingBackground)
	n.BaseWidget.Refresh()
}

func (n *NowPlaying) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(n.container)
}
