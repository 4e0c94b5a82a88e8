package widgets

import (
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/ui/layouts"
	"github.com/reelplayer/reel/ui/shortcuts"
	"github.com/reelplayer/reel/ui/util"
)

// PlaylistView shows the engine playlist with a filter entry.
// Row indexes passed to callbacks are positions in the full playlist.
type PlaylistView struct {
	widget.BaseWidget

	OnPlayItem func(idx int)
	OnRemove   func(idxs []int)
	// OnMove moves the items at idxs before the item at insertIdx.
	OnMove    func(idxs []int, insertIdx int)
	OnClear   func()
	OnShuffle func()

	filter *SearchEntry
	list   *FocusList
	menu   *widget.PopUpMenu

	colLayout *layouts.ColumnsLayout

	mutex   sync.RWMutex
	entries []backend.PlaylistEntry
	visible []int // indexes into entries shown after filtering
	sel     *util.Selection

	container *fyne.Container
}

func NewPlaylistView() *PlaylistView {
	p := &PlaylistView{}
	p.ExtendBaseWidget(p)
	p.sel = util.NewSelection(p.lenVisible)
	p.colLayout = layouts.NewColumnsLayout([]float32{40, -1})

	playIconResource := theme.NewThemedResource(theme.MediaPlayIcon())
	playIconResource.ColorName = theme.ColorNamePrimary

	p.list = NewFocusList(
		p.lenVisible,
		func() fyne.CanvasObject {
			playIcon := canvas.NewImageFromResource(playIconResource)
			playIcon.FillMode = canvas.ImageFillContain
			playIcon.SetMinSize(fyne.NewSquareSize(theme.IconInlineSize()))
			return newPlaylistRow(p, playIcon)
		},
		func(itemID widget.ListItemID, item fyne.CanvasObject) {
			p.mutex.RLock()
			// the playlist may have shrunk between the length and update callbacks
			if itemID >= len(p.visible) {
				p.mutex.RUnlock()
				return
			}
			entryIdx := p.visible[itemID]
			entry := p.entries[entryIdx]
			p.mutex.RUnlock()

			row := item.(*playlistRow)
			p.list.SetItemForID(itemID, row)
			row.ListItemID = itemID
			row.Update(entry, entryIdx+1, p.sel.IsSelected(itemID))
		},
	)

	p.filter = NewSearchEntry()
	p.filter.PlaceHolder = "Filter"
	p.filter.OnChanged = func(string) { p.applyFilter() }

	p.container = container.NewBorder(container.NewPadded(p.filter), nil, nil, nil, p.list)
	return p
}

// SetEntries replaces the displayed playlist, keeping the filter.
func (p *PlaylistView) SetEntries(entries []backend.PlaylistEntry) {
	p.mutex.Lock()
	p.entries = entries
	p.mutex.Unlock()
	p.applyFilter()
}

// FocusFilter moves keyboard focus to the filter entry.
func (p *PlaylistView) FocusFilter() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(p); c != nil {
		c.Focus(p.filter)
	}
}

func (p *PlaylistView) applyFilter() {
	p.mutex.Lock()
	p.visible = backend.FilterPlaylist(p.entries, p.filter.Text)
	p.mutex.Unlock()
	p.sel.Clear()
	p.list.ClearItemForIDMap()
	p.list.Refresh()
}

func (p *PlaylistView) lenVisible() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return len(p.visible)
}

// entryIndexes maps selected list rows to playlist indexes.
func (p *PlaylistView) entryIndexes(rows []int) []int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	idxs := make([]int, 0, len(rows))
	for _, r := range rows {
		if r < len(p.visible) {
			idxs = append(idxs, p.visible[r])
		}
	}
	return idxs
}

func (p *PlaylistView) selectedEntries() []int {
	return p.entryIndexes(p.sel.Rows())
}

func (p *PlaylistView) onRowTapped(row int, mods fyne.KeyModifier) {
	switch {
	case mods&shortcuts.ControlModifier != 0:
		p.sel.Toggle(row)
	case mods&fyne.KeyModifierShift != 0:
		p.sel.SelectRange(row)
	default:
		p.sel.Select(row)
	}
	p.list.Refresh()
}

func (p *PlaylistView) onPlayRow(row int) {
	if idxs := p.entryIndexes([]int{row}); len(idxs) == 1 && p.OnPlayItem != nil {
		p.OnPlayItem(idxs[0])
	}
}

func (p *PlaylistView) removeSelected() {
	if idxs := p.selectedEntries(); len(idxs) > 0 && p.OnRemove != nil {
		p.OnRemove(idxs)
	}
}

// moveSelected moves the selection one place up or down.
func (p *PlaylistView) moveSelected(up bool) {
	idxs := p.selectedEntries()
	if len(idxs) == 0 || p.OnMove == nil {
		return
	}
	p.mutex.RLock()
	n := len(p.entries)
	p.mutex.RUnlock()
	insert := idxs[len(idxs)-1] + 2
	if up {
		insert = idxs[0] - 1
	}
	if insert < 0 || insert > n {
		return
	}
	p.OnMove(idxs, insert)
}

func (p *PlaylistView) onShowContextMenu(e *fyne.PointEvent, row int) {
	if !p.sel.IsSelected(row) {
		p.sel.Select(row)
		p.list.Refresh()
	}
	if p.menu == nil {
		play := fyne.NewMenuItem("Play", func() {
			if idxs := p.selectedEntries(); len(idxs) > 0 && p.OnPlayItem != nil {
				p.OnPlayItem(idxs[0])
			}
		})
		play.Icon = theme.MediaPlayIcon()
		up := fyne.NewMenuItem("Move up", func() { p.moveSelected(true) })
		up.Icon = theme.MoveUpIcon()
		down := fyne.NewMenuItem("Move down", func() { p.moveSelected(false) })
		down.Icon = theme.MoveDownIcon()
		remove := fyne.NewMenuItem("Remove", p.removeSelected)
		remove.Icon = theme.ContentRemoveIcon()
		shuffle := fyne.NewMenuItem("Shuffle playlist", func() {
			if p.OnShuffle != nil {
				p.OnShuffle()
			}
		})
		clearAll := fyne.NewMenuItem("Clear playlist", func() {
			if p.OnClear != nil {
				p.OnClear()
			}
		})
		clearAll.Icon = theme.DeleteIcon()
		p.menu = widget.NewPopUpMenu(
			fyne.NewMenu("", play, fyne.NewMenuItemSeparator(), up, down, remove,
				fyne.NewMenuItemSeparator(), shuffle, clearAll),
			fyne.CurrentApp().Driver().CanvasForObject(p),
		)
	}
	p.menu.ShowAtPosition(e.AbsolutePosition)
}

func (p *PlaylistView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

type playlistRow struct {
	ListRow

	entryID   string
	isPlaying bool

	playingIcon fyne.CanvasObject
	num         *widget.Label
	numCell     *fyne.Container
	name        *widget.Label
}

func newPlaylistRow(p *PlaylistView, playingIcon fyne.CanvasObject) *playlistRow {
	r := &playlistRow{
		playingIcon: playingIcon,
		num:         widget.NewLabel(""),
		name:        widget.NewLabel(""),
	}
	r.ExtendBaseWidget(r)
	r.name.Truncation = fyne.TextTruncateEllipsis
	r.numCell = container.NewCenter(r.num)

	r.OnTapped = func(mods fyne.KeyModifier) { p.onRowTapped(r.ListItemID, mods) }
	r.OnDoubleTapped = func() { p.onPlayRow(r.ListItemID) }
	r.OnTappedSecondary = func(e *fyne.PointEvent) { p.onShowContextMenu(e, r.ListItemID) }
	r.OnFocusNeighbor = func(up bool) { p.list.FocusNeighbor(r.ListItemID, up) }
	r.OnDelete = func() {
		p.sel.Select(r.ListItemID)
		p.removeSelected()
	}

	r.Content = container.New(p.colLayout, r.numCell, r.name)
	return r
}

func (r *playlistRow) Update(e backend.PlaylistEntry, rowNum int, selected bool) {
	changed := false
	if selected != r.Selected {
		r.Selected = selected
		changed = true
	}
	if num := strconv.Itoa(rowNum); r.num.Text != num {
		r.num.Text = num
		changed = true
	}
	if id := e.ID.String(); id != r.entryID {
		r.EnsureUnfocused()
		r.entryID = id
		changed = true
	}
	if r.name.Text != e.Name {
		r.name.Text = e.Name
		changed = true
	}
	if e.Current != r.isPlaying {
		r.isPlaying = e.Current
		r.name.TextStyle.Bold = e.Current
		if e.Current {
			r.numCell.Objects[0] = r.playingIcon
		} else {
			r.numCell.Objects[0] = r.num
		}
		r.numCell.Refresh()
		changed = true
	}
	if changed {
		r.Refresh()
	}
}
