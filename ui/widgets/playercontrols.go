package widgets

import (
	"github.com/reelplayer/reel/ui/layouts"
	myTheme "github.com/reelplayer/reel/ui/theme"
	"github.com/reelplayer/reel/ui/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// TrackPosSlider is a slider that knows whether it is being dragged,
// so playback position updates do not fight the user.
type TrackPosSlider struct {
	widget.Slider

	// set when the value is updated from playback rather than the user
	IgnoreNextChangeEnded bool

	isDragging bool
}

func NewTrackPosSlider() *TrackPosSlider {
	slider := &TrackPosSlider{
		Slider: widget.Slider{
			Value:       0,
			Min:         0,
			Max:         1,
			Step:        0.001,
			Orientation: widget.Horizontal,
		},
	}
	slider.ExtendBaseWidget(slider)
	return slider
}

func (t *TrackPosSlider) SetValue(value float64) {
	t.IgnoreNextChangeEnded = true
	t.Slider.SetValue(value)
}

func (t *TrackPosSlider) Tapped(e *fyne.PointEvent) {
	t.isDragging = false
	t.IgnoreNextChangeEnded = false
	t.Slider.Tapped(e)

	// don't keep focus after being tapped
	fyne.CurrentApp().Driver().CanvasForObject(t).Focus(nil)
}

func (t *TrackPosSlider) DragEnd() {
	t.isDragging = false
	t.IgnoreNextChangeEnded = false
	t.Slider.DragEnd()
}

func (t *TrackPosSlider) Dragged(e *fyne.DragEvent) {
	t.isDragging = true
	t.Slider.Dragged(e)
}

func (t *TrackPosSlider) IsDragging() bool {
	return t.isDragging
}

type labelMinSize struct {
	widget.Label
	MinWidth float32
}

func (l *labelMinSize) MinSize() fyne.Size {
	return fyne.NewSize(l.MinWidth, l.Label.MinSize().Height)
}

func newLabelMinSize(text string, minWidth float32) *labelMinSize {
	l := &labelMinSize{MinWidth: minWidth, Label: widget.Label{Text: text}}
	l.ExtendBaseWidget(l)
	return l
}

// PlayerControls is the control bar under the video: seek bar, transport
// buttons, volume and toggles for loop, playlist and fullscreen.
type PlayerControls struct {
	widget.BaseWidget

	OnSeek             func(fraction float64)
	OnPlayPause        func()
	OnStop             func()
	OnPrevious         func()
	OnNext             func()
	OnPreviousChapter  func()
	OnNextChapter      func()
	OnLoopChanged      func(bool)
	OnTogglePlaylist   func()
	OnToggleFullscreen func()

	Volume *VolumeControl

	slider         *TrackPosSlider
	curTimeLabel   *labelMinSize
	totalTimeLabel *labelMinSize
	playpause      *ttwidget.Button
	loop           *ttwidget.Button
	fullscreen     *ttwidget.Button
	container      *fyne.Container

	totalTime float64
	looping   bool
}

var _ fyne.Widget = (*PlayerControls)(nil)

func NewPlayerControls(initialVolume int) *PlayerControls {
	pc := &PlayerControls{}
	pc.ExtendBaseWidget(pc)

	pc.slider = NewTrackPosSlider()
	pc.curTimeLabel = newLabelMinSize(util.SecondsToTimeString(0), 60)
	pc.curTimeLabel.Alignment = fyne.TextAlignTrailing
	pc.totalTimeLabel = newLabelMinSize(util.SecondsToTimeString(0), 60)

	pc.slider.OnChanged = func(f float64) {
		if pc.slider.IsDragging() {
			pc.curTimeLabel.SetText(util.SecondsToTimeString(f * pc.totalTime))
		}
	}
	pc.slider.OnChangeEnded = func(pos float64) {
		if pc.slider.IgnoreNextChangeEnded {
			pc.slider.IgnoreNextChangeEnded = false
		} else if pc.OnSeek != nil {
			pc.OnSeek(pos)
		}
	}

	button := func(icon fyne.Resource, tip string, cb *func()) *ttwidget.Button {
		b := ttwidget.NewButtonWithIcon("", icon, func() {
			if *cb != nil {
				(*cb)()
			}
		})
		b.Importance = widget.LowImportance
		b.SetToolTip(tip)
		return b
	}
	prevChapter := button(theme.MediaFastRewindIcon(), "Previous chapter", &pc.OnPreviousChapter)
	prev := button(theme.MediaSkipPreviousIcon(), "Previous", &pc.OnPrevious)
	pc.playpause = button(theme.MediaPlayIcon(), "Play/Pause", &pc.OnPlayPause)
	pc.playpause.Importance = widget.MediumImportance
	stop := button(theme.MediaStopIcon(), "Stop", &pc.OnStop)
	next := button(theme.MediaSkipNextIcon(), "Next", &pc.OnNext)
	nextChapter := button(theme.MediaFastForwardIcon(), "Next chapter", &pc.OnNextChapter)

	pc.loop = ttwidget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		pc.SetLooping(!pc.looping)
		if pc.OnLoopChanged != nil {
			pc.OnLoopChanged(pc.looping)
		}
	})
	pc.loop.Importance = widget.LowImportance
	pc.loop.SetToolTip("Loop playlist")
	playlist := button(theme.ListIcon(), "Playlist", &pc.OnTogglePlaylist)
	pc.fullscreen = button(theme.ViewFullScreenIcon(), "Fullscreen", &pc.OnToggleFullscreen)

	pc.Volume = NewVolumeControl(initialVolume)

	transport := container.NewHBox(prevChapter, prev, pc.playpause, stop, next, nextChapter)
	left := container.NewHBox(pc.loop, playlist)
	right := container.NewHBox(layout.NewSpacer(), pc.Volume, pc.fullscreen)
	buttons := container.New(layouts.NewLeftMiddleRightLayout(300), left, container.NewCenter(transport), right)

	seek := container.NewBorder(nil, nil, pc.curTimeLabel, pc.totalTimeLabel, pc.slider)
	pc.container = container.NewStack(
		myTheme.NewThemedRectangle(myTheme.ColorNameControlsBackground),
		container.NewVBox(seek, buttons),
	)
	return pc
}

func (pc *PlayerControls) SetPlaying(playing bool) {
	if playing {
		pc.playpause.SetIcon(theme.MediaPauseIcon())
	} else {
		pc.playpause.SetIcon(theme.MediaPlayIcon())
	}
}

func (pc *PlayerControls) SetLooping(loop bool) {
	pc.looping = loop
	if loop {
		pc.loop.Importance = widget.HighImportance
	} else {
		pc.loop.Importance = widget.LowImportance
	}
	pc.loop.Refresh()
}

func (pc *PlayerControls) SetFullscreen(fs bool) {
	if fs {
		pc.fullscreen.SetIcon(theme.ViewRestoreIcon())
	} else {
		pc.fullscreen.SetIcon(theme.ViewFullScreenIcon())
	}
}

// SetSeekable enables the seek bar only when there is a known duration.
func (pc *PlayerControls) SetSeekable(seekable bool) {
	if seekable {
		pc.slider.Enable()
	} else {
		pc.slider.Disable()
	}
}

func (pc *PlayerControls) UpdatePlayTime(curTime, totalTime float64) {
	pc.totalTime = totalTime
	v := 0.0
	if totalTime > 0 {
		v = curTime / totalTime
	}

	updated := false
	if tt := util.SecondsToTimeString(totalTime); tt != pc.totalTimeLabel.Text {
		pc.totalTimeLabel.SetText(tt)
		updated = true
	}
	if !pc.slider.IsDragging() {
		if ct := util.SecondsToTimeString(curTime); ct != pc.curTimeLabel.Text {
			pc.curTimeLabel.SetText(ct)
			updated = true
		}
		if updated {
			// only move the slider when the time label changes
			pc.slider.SetValue(v)
		}
	}
}

func (pc *PlayerControls) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.container)
}
