package widgets

import (
	"strconv"
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NumberEntry is an entry that only accepts up to maxDigits digits.
type NumberEntry struct {
	widget.Entry

	maxDigits int
	minWidth  float32
}

func NewNumberEntry(maxDigits int) *NumberEntry {
	e := &NumberEntry{maxDigits: maxDigits}
	e.ExtendBaseWidget(e)
	return e
}

func (e *NumberEntry) TypedRune(r rune) {
	if !unicode.IsDigit(r) {
		return
	}
	if len(e.Text)-len(e.SelectedText()) >= e.maxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Value returns the entered number, or def if the entry is empty.
func (e *NumberEntry) Value(def int) int {
	if i, err := strconv.Atoi(e.Text); err == nil {
		return i
	}
	return def
}

func (e *NumberEntry) MinSize() fyne.Size {
	if e.minWidth == 0 {
		e.minWidth = theme.Padding()*4 + fyne.MeasureText(strings.Repeat("W", e.maxDigits),
			theme.TextSize(), e.TextStyle).Width
	}
	return fyne.NewSize(e.minWidth, e.Entry.MinSize().Height)
}
