package layouts

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func rect(w, h float32) *canvas.Rectangle {
	r := canvas.NewRectangle(nil)
	r.SetMinSize(fyne.NewSize(w, h))
	return r
}

func TestColumnsLayout(t *testing.T) {
	num, name, dur := rect(20, 10), rect(50, 12), rect(30, 10)
	l := NewColumnsLayout([]float32{40, -1, 60})
	objs := []fyne.CanvasObject{num, name, dur}

	assert.Equal(t, fyne.NewSize(150, 12), l.MinSize(objs))

	l.Layout(objs, fyne.NewSize(300, 20))
	assert.Equal(t, fyne.NewSize(40, 20), num.Size())
	assert.Equal(t, fyne.NewSize(200, 20), name.Size())
	assert.Equal(t, fyne.NewPos(240, 0), dur.Position())

	num.Hide()
	l.Layout(objs, fyne.NewSize(300, 20))
	assert.Equal(t, fyne.NewPos(0, 0), name.Position())
	assert.Equal(t, float32(240), name.Size().Width)
}

func TestColumnsLayoutNoExpandingColumn(t *testing.T) {
	a, b := rect(20, 10), rect(20, 10)
	l := NewColumnsLayout([]float32{30})
	l.Layout([]fyne.CanvasObject{a, b}, fyne.NewSize(100, 10))
	assert.Equal(t, float32(30), a.Size().Width)
	assert.Equal(t, float32(20), b.Size().Width)
	assert.Equal(t, fyne.NewPos(30, 0), b.Position())
}

func TestLeftMiddleRightLayout(t *testing.T) {
	test.NewTempApp(t)
	pad := theme.Padding()

	left, mid, right := rect(10, 10), rect(100, 30), rect(40, 20)
	l := NewLeftMiddleRightLayout(200)
	objs := []fyne.CanvasObject{left, mid, right}

	assert.Equal(t, fyne.NewSize(280+pad*4, 30), l.MinSize(objs))

	w := 600 + pad*4
	l.Layout(objs, fyne.NewSize(w, 30))
	assert.Equal(t, float32(200), left.Size().Width)
	assert.Equal(t, float32(200), mid.Size().Width)
	assert.Equal(t, fyne.NewPos(200+pad*2, 0), mid.Position())
	assert.Equal(t, fyne.NewPos(400+pad*3, 0), right.Position())

	l.Layout([]fyne.CanvasObject{nil, mid, nil}, fyne.NewSize(w, 30))
	assert.Equal(t, fyne.NewPos(200+pad*2, 0), mid.Position())
}
