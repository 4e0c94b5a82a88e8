package dialogs

import (
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// OpenLocationDialog asks for a URL or path to play.
type OpenLocationDialog struct {
	widget.BaseWidget

	OnSubmit  func(location string, appendOnly bool)
	OnDismiss func()

	entry      *widget.Entry
	appendOnly *widget.Check
	openBtn    *widget.Button
	content    fyne.CanvasObject
}

func NewOpenLocationDialog(initial string) *OpenLocationDialog {
	d := &OpenLocationDialog{}
	d.ExtendBaseWidget(d)

	d.entry = widget.NewEntry()
	d.entry.PlaceHolder = "https://example.com/video.mp4"
	d.entry.Validator = ValidateLocation
	d.entry.OnSubmitted = func(string) { d.submit() }
	d.appendOnly = widget.NewCheck("Add to playlist", nil)
	d.openBtn = widget.NewButton("Open", d.submit)
	d.openBtn.Importance = widget.HighImportance
	d.entry.OnChanged = func(s string) {
		if ValidateLocation(s) == nil {
			d.openBtn.Enable()
		} else {
			d.openBtn.Disable()
		}
	}
	d.entry.SetText(initial)
	d.entry.OnChanged(initial)

	d.content = container.NewVBox(
		widget.NewLabel("Enter a URL or file path to open:"),
		d.entry,
		d.appendOnly,
		widget.NewSeparator(),
		container.NewHBox(layout.NewSpacer(),
			widget.NewButton("Cancel", d.dismiss),
			d.openBtn),
	)
	return d
}

// ValidateLocation reports whether s is plausibly a media locator:
// an absolute path or a URL with a scheme.
func ValidateLocation(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errEmptyLocation
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, `\\`) || (len(s) > 2 && s[1] == ':') {
		return nil
	}
	if u, err := url.Parse(s); err != nil || len(u.Scheme) < 2 {
		return errInvalidLocation
	}
	return nil
}

func (d *OpenLocationDialog) submit() {
	loc := strings.TrimSpace(d.entry.Text)
	if ValidateLocation(loc) != nil {
		return
	}
	if d.OnSubmit != nil {
		d.OnSubmit(loc, d.appendOnly.Checked)
	}
}

func (d *OpenLocationDialog) dismiss() {
	if d.OnDismiss != nil {
		d.OnDismiss()
	}
}

// Entry returns the location entry so the caller can focus it.
func (d *OpenLocationDialog) Entry() fyne.Focusable {
	return d.entry
}

func (d *OpenLocationDialog) MinSize() fyne.Size {
	return fyne.NewSize(460, d.BaseWidget.MinSize().Height)
}

func (d *OpenLocationDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}
