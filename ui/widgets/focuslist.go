package widgets

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	list "github.com/dweymouth/fyne-advanced-list"
	"github.com/reelplayer/reel/ui/shortcuts"
)

const doubleTapMillis = 300

// FocusList is a List that the focus manager skips over. Focus moves
// between its rows directly with the arrow keys.
type FocusList struct {
	list.List

	mutex sync.Mutex
}

func NewFocusList(len func() int, create func() fyne.CanvasObject, update func(widget.ListItemID, fyne.CanvasObject)) *FocusList {
	g := &FocusList{
		List: list.List{
			HideSeparators: true,
			Length:         len,
			CreateItem:     create,
			UpdateItem:     update,
		},
	}
	g.ExtendBaseWidget(g)
	return g
}

var _ fyne.Disableable = (*FocusList)(nil)

func (g *FocusList) Disabled() bool { return true }

func (g *FocusList) Disable() {}

func (g *FocusList) Enable() {}

func (g *FocusList) FocusNeighbor(curItem widget.ListItemID, up bool) {
	focusIdx := curItem + 1
	if up {
		focusIdx = curItem - 1
	}
	if focusIdx < 0 || focusIdx >= g.Length() {
		return
	}
	g.ScrollTo(focusIdx)
	g.mutex.Lock()
	other := g.ItemForID(focusIdx)
	g.mutex.Unlock()
	if f, ok := other.(fyne.Focusable); ok {
		fyne.CurrentApp().Driver().CanvasForObject(g).Focus(f)
	}
}

var (
	_ fyne.Tappable          = (*ListRow)(nil)
	_ fyne.SecondaryTappable = (*ListRow)(nil)
	_ fyne.Focusable         = (*ListRow)(nil)
)

// ListRow is the selectable, focusable base of a FocusList row.
type ListRow struct {
	widget.BaseWidget

	ListItemID widget.ListItemID
	Content    fyne.CanvasObject
	Selected   bool
	Focused    bool

	// OnTapped receives the keyboard modifiers held during the tap.
	OnTapped          func(fyne.KeyModifier)
	OnDoubleTapped    func()
	OnTappedSecondary func(*fyne.PointEvent)
	OnFocusNeighbor   func(up bool)
	OnDelete          func()

	tappedAt      int64 // unixMillis
	focusedRect   *canvas.Rectangle
	selectionRect *canvas.Rectangle
}

func (l *ListRow) EnsureUnfocused() {
	if l.Focused {
		if c := fyne.CurrentApp().Driver().CanvasForObject(l); c != nil {
			c.Unfocus()
		}
	}
	l.Focused = false
}

// Double taps are detected here so the single tap fires without delay.
func (l *ListRow) Tapped(*fyne.PointEvent) {
	prevTap := l.tappedAt
	l.tappedAt = time.Now().UnixMilli()
	if l.tappedAt-prevTap < doubleTapMillis {
		if l.OnDoubleTapped != nil {
			l.OnDoubleTapped()
		}
	} else if l.OnTapped != nil {
		l.OnTapped(shortcuts.CurrentModifiers())
	}
}

func (l *ListRow) TappedSecondary(e *fyne.PointEvent) {
	if l.OnTappedSecondary != nil {
		l.OnTappedSecondary(e)
	}
}

func (l *ListRow) FocusGained() {
	l.Focused = true
	l.Refresh()
}

func (l *ListRow) FocusLost() {
	l.Focused = false
	l.Refresh()
}

func (l *ListRow) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyUp, fyne.KeyDown:
		if l.OnFocusNeighbor != nil {
			l.OnFocusNeighbor(e.Name == fyne.KeyUp)
		}
	case fyne.KeySpace:
		if l.OnTapped != nil {
			l.OnTapped(0)
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		if l.OnDoubleTapped != nil {
			l.OnDoubleTapped()
		}
	case fyne.KeyDelete:
		if l.OnDelete != nil {
			l.OnDelete()
		}
	}
}

func (l *ListRow) TypedRune(rune) {}

func (l *ListRow) Refresh() {
	if l.focusedRect != nil {
		l.focusedRect.FillColor = theme.Color(theme.ColorNameHover)
		l.focusedRect.Hidden = !l.Focused
		l.selectionRect.FillColor = theme.Color(theme.ColorNameSelection)
		l.selectionRect.Hidden = !l.Selected
	}
	l.BaseWidget.Refresh()
}

func (l *ListRow) CreateRenderer() fyne.WidgetRenderer {
	l.selectionRect = canvas.NewRectangle(theme.Color(theme.ColorNameSelection))
	l.selectionRect.CornerRadius = theme.SelectionRadiusSize()
	l.selectionRect.Hidden = !l.Selected
	l.focusedRect = canvas.NewRectangle(theme.Color(theme.ColorNameHover))
	l.focusedRect.CornerRadius = theme.SelectionRadiusSize()
	l.focusedRect.Hidden = !l.Focused
	return widget.NewSimpleRenderer(
		container.NewStack(l.selectionRect, l.focusedRect, l.Content),
	)
}
