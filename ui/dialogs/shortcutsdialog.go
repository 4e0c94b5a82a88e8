package dialogs

import (
	"fmt"
	"strings"

	"github.com/reelplayer/reel/backend/keybind"
	"github.com/reelplayer/reel/ui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// ShortcutsDialog lists the active key and mouse bindings.
type ShortcutsDialog struct {
	widget.BaseWidget

	OnDismiss func()

	all     []keybind.Binding
	shown   []keybind.Binding
	table   *widget.Table
	content fyne.CanvasObject
}

func NewShortcutsDialog(km *keybind.Keymap, rejected []keybind.Rejection) *ShortcutsDialog {
	d := &ShortcutsDialog{all: km.Bindings()}
	d.ExtendBaseWidget(d)
	d.shown = d.all

	d.table = widget.NewTable(
		func() (int, int) { return len(d.shown), 3 },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(d.shown) {
				return
			}
			b := d.shown[id.Row]
			l := o.(*widget.Label)
			switch id.Col {
			case 0:
				l.SetText(b.Trigger.String())
			case 1:
				l.SetText(b.Command)
			case 2:
				l.SetText(b.Source.String())
			}
		},
	)
	d.table.SetColumnWidth(0, 150)
	d.table.SetColumnWidth(1, 320)
	d.table.SetColumnWidth(2, 80)

	filter := widgets.NewSearchEntry()
	filter.PlaceHolder = "Filter"
	filter.OnChanged = func(q string) {
		d.shown = FilterBindings(d.all, q)
		d.table.Refresh()
	}

	var top []fyne.CanvasObject
	top = append(top, filter)
	if len(rejected) > 0 {
		msg := widget.NewLabel(fmt.Sprintf("%d line(s) of the bindings file were ignored. See the log for details.", len(rejected)))
		msg.Importance = widget.WarningImportance
		msg.Wrapping = fyne.TextWrapWord
		top = append(top, msg)
	}

	d.content = container.NewBorder(
		container.NewVBox(top...),
		container.NewVBox(widget.NewSeparator(),
			container.NewHBox(layout.NewSpacer(), widget.NewButton("Close", func() {
				if d.OnDismiss != nil {
					d.OnDismiss()
				}
			}))),
		nil, nil, d.table)
	return d
}

// FilterBindings returns the bindings whose trigger or command
// contains q, ignoring case.
func FilterBindings(bindings []keybind.Binding, q string) []keybind.Binding {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return bindings
	}
	var out []keybind.Binding
	for _, b := range bindings {
		if strings.Contains(strings.ToLower(b.Trigger.String()), q) ||
			strings.Contains(strings.ToLower(b.Command), q) {
			out = append(out, b)
		}
	}
	return out
}

func (d *ShortcutsDialog) MinSize() fyne.Size {
	return fyne.NewSize(600, 440)
}

func (d *ShortcutsDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}
