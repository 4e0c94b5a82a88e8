package ui

import (
	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/ui/widgets"
	log "github.com/sirupsen/logrus"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// BottomPanel is the control bar at the bottom of the main window,
// connected to the playback manager in both directions.
type BottomPanel struct {
	widget.BaseWidget

	Controls *widgets.PlayerControls

	pm *backend.PlaybackManager
}

var _ fyne.Widget = (*BottomPanel)(nil)

func NewBottomPanel(pm *backend.PlaybackManager, cfg *backend.PlaybackConfig) *BottomPanel {
	bp := &BottomPanel{pm: pm}
	bp.ExtendBaseWidget(bp)

	bp.Controls = widgets.NewPlayerControls(pm.Volume())
	bp.Controls.SetLooping(cfg.LoopPlaylist)

	bp.Controls.OnSeek = func(frac float64) {
		logIfErr("seek", pm.SeekFraction(frac))
	}
	bp.Controls.OnPlayPause = func() { logIfErr("play/pause", pm.PlayPause()) }
	bp.Controls.OnStop = func() { logIfErr("stop", pm.Stop()) }
	bp.Controls.OnPrevious = pm.Previous
	bp.Controls.OnNext = pm.Next
	bp.Controls.OnPreviousChapter = func() { logIfErr("previous chapter", pm.PreviousChapter()) }
	bp.Controls.OnNextChapter = func() { logIfErr("next chapter", pm.NextChapter()) }
	bp.Controls.OnToggleFullscreen = func() { logIfErr("fullscreen", pm.ToggleFullscreen()) }
	bp.Controls.OnLoopChanged = func(loop bool) {
		if err := pm.SetLoopPlaylist(loop); err != nil {
			log.Printf("failed to set playlist looping: %v", err)
			return
		}
		cfg.LoopPlaylist = loop
	}
	bp.Controls.Volume.OnVolumeChanged = func(vol int) {
		logIfErr("set volume", pm.SetVolume(vol))
	}
	bp.Controls.Volume.OnMuteToggled = func() { logIfErr("mute", pm.ToggleMute()) }

	pm.OnPlayTimeUpdate(bp.Controls.UpdatePlayTime)
	pm.OnPlaying(func() { bp.Controls.SetPlaying(true) })
	pm.OnPaused(func() { bp.Controls.SetPlaying(false) })
	pm.OnStopped(func() {
		bp.Controls.SetPlaying(false)
		bp.Controls.UpdatePlayTime(0, 0)
		bp.Controls.SetSeekable(false)
	})
	pm.OnVolumeChange(bp.Controls.Volume.SetVolume)
	pm.OnLoopChange(bp.Controls.SetLooping)
	pm.Dispatcher().OnStatusChange(bp.onStatusChange)

	bp.onStatusChange(pm.Status())
	return bp
}

func (bp *BottomPanel) onStatusChange(st backend.PlaybackStatus) {
	bp.Controls.SetFullscreen(st.Fullscreen)
	bp.Controls.Volume.SetMuted(st.Muted)
	bp.Controls.SetSeekable(st.Loaded && st.Duration > 0)
}

func (bp *BottomPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(bp.Controls)
}

func logIfErr(what string, err error) {
	if err != nil {
		log.Printf("%s failed: %v", what, err)
	}
}
