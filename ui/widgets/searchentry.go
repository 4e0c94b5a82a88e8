package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SearchEntry is an entry with a search icon that turns into a
// clear button once text is entered. Escape also clears it.
type SearchEntry struct {
	widget.Entry

	clear *clearTextButton
}

func NewSearchEntry() *SearchEntry {
	sf := &SearchEntry{}
	sf.ExtendBaseWidget(sf)
	sf.PlaceHolder = "Search"
	sf.clear = newClearTextButton(func() { sf.SetText("") })
	sf.ActionItem = sf.clear
	return sf
}

func (s *SearchEntry) TypedKey(e *fyne.KeyEvent) {
	if e.Name == fyne.KeyEscape && s.Text != "" {
		s.SetText("")
		return
	}
	s.Entry.TypedKey(e)
}

func (s *SearchEntry) Refresh() {
	if s.Text == "" {
		s.clear.Resource = theme.SearchIcon()
	} else {
		s.clear.Resource = theme.ContentClearIcon()
	}
	s.Entry.Refresh()
}

var _ fyne.Tappable = (*clearTextButton)(nil)

type clearTextButton struct {
	widget.Icon

	OnTapped func()
}

func newClearTextButton(onTapped func()) *clearTextButton {
	c := &clearTextButton{OnTapped: onTapped}
	c.ExtendBaseWidget(c)
	c.Resource = theme.SearchIcon()
	return c
}

func (c *clearTextButton) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}
