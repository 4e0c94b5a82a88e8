package layouts

import "fyne.io/fyne/v2"

// ColumnsLayout lays out items side by side. A column with a
// non-negative width is fixed at max(width, item MinSize); all
// negative-width columns split the remaining space equally.
// Hidden items take no space.
type ColumnsLayout struct {
	ColumnWidths []float32
}

func NewColumnsLayout(widths []float32) *ColumnsLayout {
	return &ColumnsLayout{ColumnWidths: widths}
}

func (c *ColumnsLayout) width(i int) float32 {
	if i < len(c.ColumnWidths) {
		return c.ColumnWidths[i]
	}
	return 0
}

func (c *ColumnsLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var size fyne.Size
	for i, o := range objects {
		if !o.Visible() {
			continue
		}
		min := o.MinSize()
		size.Height = fyne.Max(size.Height, min.Height)
		size.Width += fyne.Max(min.Width, c.width(i))
	}
	return size
}

func (c *ColumnsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var fixedW float32
	var expandCount int
	for i, o := range objects {
		if !o.Visible() {
			continue
		}
		if c.width(i) < 0 {
			expandCount++
		} else {
			fixedW += fyne.Max(o.MinSize().Width, c.width(i))
		}
	}
	var expandW float32
	if expandCount > 0 {
		expandW = (size.Width - fixedW) / float32(expandCount)
	}

	var x float32
	for i, o := range objects {
		if !o.Visible() {
			continue
		}
		w := fyne.Max(o.MinSize().Width, c.width(i))
		if c.width(i) < 0 {
			w = fyne.Max(o.MinSize().Width, expandW)
		}
		o.Resize(fyne.NewSize(w, size.Height))
		o.Move(fyne.NewPos(x, 0))
		x += w
	}
}
