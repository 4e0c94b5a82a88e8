package layouts

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LeftMiddleRightLayout lays out three objects with the middle one
// centered at no less than middleWidth and the outer two sharing the
// remaining width equally. A nil or hidden outer object leaves a gap.
type LeftMiddleRightLayout struct {
	middleWidth float32
}

func NewLeftMiddleRightLayout(middleWidth float32) *LeftMiddleRightLayout {
	return &LeftMiddleRightLayout{middleWidth: middleWidth}
}

func minSizeOf(o fyne.CanvasObject) fyne.Size {
	if o == nil || !o.Visible() {
		return fyne.Size{}
	}
	return o.MinSize()
}

func (b *LeftMiddleRightLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	l, m, r := minSizeOf(objects[0]), minSizeOf(objects[1]), minSizeOf(objects[2])
	side := fyne.Max(l.Width, r.Width)
	return fyne.Size{
		Width:  2*side + fyne.Max(b.middleWidth, m.Width) + theme.Padding()*4,
		Height: fyne.Max(l.Height, fyne.Max(m.Height, r.Height)),
	}
}

func (b *LeftMiddleRightLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pad := theme.Padding()
	midW := fyne.Max(b.middleWidth, minSizeOf(objects[1]).Width)
	sideW := fyne.Max(0, (size.Width-midW-pad*4)/2)
	if objects[0] != nil {
		objects[0].Resize(fyne.NewSize(sideW, size.Height))
		objects[0].Move(fyne.NewPos(pad, 0))
	}
	objects[1].Resize(fyne.NewSize(midW, size.Height))
	objects[1].Move(fyne.NewPos(sideW+pad*2, 0))
	if objects[2] != nil {
		objects[2].Resize(fyne.NewSize(sideW, size.Height))
		objects[2].Move(fyne.NewPos(sideW+midW+pad*3, 0))
	}
}
