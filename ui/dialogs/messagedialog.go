package dialogs

import (
	"strings"

	"github.com/reelplayer/reel/ui/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const messageWrapWidth = 72

// MessageDialog shows engine errors and warnings. Text appended while
// it is open is added below what is already shown.
type MessageDialog struct {
	widget.BaseWidget

	OnDismiss func()

	text    strings.Builder
	label   *widget.Label
	scroll  *container.Scroll
	content fyne.CanvasObject
}

func NewMessageDialog(title, msg string, warning bool) *MessageDialog {
	d := &MessageDialog{}
	d.ExtendBaseWidget(d)

	icon := theme.ErrorIcon()
	if warning {
		icon = theme.WarningIcon()
	}
	heading := widget.NewRichTextWithText(title)
	heading.Segments[0].(*widget.TextSegment).Style.TextStyle.Bold = true

	d.label = widget.NewLabel("")
	d.label.TextStyle.Monospace = true
	d.scroll = container.NewVScroll(d.label)
	d.scroll.SetMinSize(fyne.NewSize(0, 120))
	d.AppendText(msg)

	d.content = container.NewBorder(
		container.NewHBox(widget.NewIcon(icon), heading),
		container.NewVBox(widget.NewSeparator(),
			container.NewHBox(layout.NewSpacer(), widget.NewButton("Close", func() {
				if d.OnDismiss != nil {
					d.OnDismiss()
				}
			}))),
		nil, nil, d.scroll)
	return d
}

func (d *MessageDialog) AppendText(msg string) {
	msg = util.WrapMessage(msg, messageWrapWidth)
	if msg == "" {
		return
	}
	if d.text.Len() > 0 {
		d.text.WriteString("\n")
	}
	d.text.WriteString(msg)
	d.label.SetText(d.text.String())
	d.scroll.ScrollToBottom()
}

func (d *MessageDialog) Text() string {
	return d.text.String()
}

func (d *MessageDialog) MinSize() fyne.Size {
	return fyne.NewSize(560, d.BaseWidget.MinSize().Height)
}

func (d *MessageDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}
