package widgets

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

type volumeSlider struct {
	ttwidget.Slider

	Width float32
}

func newVolumeSlider(width float32) *volumeSlider {
	v := &volumeSlider{
		Slider: ttwidget.Slider{
			Slider: widget.Slider{
				Min:         0,
				Max:         100,
				Step:        1,
				Orientation: widget.Horizontal,
				Value:       100,
			},
		},
		Width: width,
	}
	v.ExtendBaseWidget(v)
	return v
}

func (v *volumeSlider) MinSize() fyne.Size {
	return fyne.NewSize(v.Width, v.Slider.MinSize().Height)
}

// VolumeControl is a mute button beside a volume slider. Muting is
// the engine's mute flag, so the slider keeps its value while muted.
type VolumeControl struct {
	widget.BaseWidget

	OnVolumeChanged func(int)
	OnMuteToggled   func()

	mute   *ttwidget.Button
	slider *volumeSlider

	muted bool

	container *fyne.Container
}

func NewVolumeControl(initialVol int) *VolumeControl {
	v := &VolumeControl{}
	v.ExtendBaseWidget(v)
	v.mute = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), func() {
		if v.OnMuteToggled != nil {
			v.OnMuteToggled()
		}
	})
	v.mute.Importance = widget.LowImportance
	v.mute.SetToolTip("Mute")
	v.slider = newVolumeSlider(100)
	v.slider.Value = float64(initialVol)
	v.slider.SetToolTip(fmt.Sprintf("Volume %d%%", initialVol))
	v.slider.OnChanged = v.onChanged
	v.updateIcon()
	v.container = container.NewHBox(v.mute, container.NewCenter(v.slider))
	return v
}

func (v *VolumeControl) onChanged(volume float64) {
	vol := int(volume)
	v.slider.SetToolTip(fmt.Sprintf("Volume %d%%", vol))
	v.updateIcon()
	if v.OnVolumeChanged != nil {
		v.OnVolumeChanged(vol)
	}
}

// SetVolume updates the slider without invoking OnVolumeChanged.
func (v *VolumeControl) SetVolume(vol int) {
	if int(v.slider.Value) == vol {
		return
	}
	v.slider.Value = float64(vol)
	v.slider.SetToolTip(fmt.Sprintf("Volume %d%%", vol))
	v.slider.Refresh()
	v.updateIcon()
}

func (v *VolumeControl) SetMuted(muted bool) {
	if muted == v.muted {
		return
	}
	v.muted = muted
	v.updateIcon()
}

func (v *VolumeControl) updateIcon() {
	vol := int(v.slider.Value)
	switch {
	case v.muted || vol <= 0:
		v.mute.SetIcon(theme.VolumeMuteIcon())
	case vol < 50:
		v.mute.SetIcon(theme.VolumeDownIcon())
	default:
		v.mute.SetIcon(theme.VolumeUpIcon())
	}
}

func (v *VolumeControl) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}
