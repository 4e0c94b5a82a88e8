package dialogs

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/stretchr/testify/assert"
)

func TestValidateLocation(t *testing.T) {
	for _, ok := range []string{
		"https://example.com/a.mp4",
		"ytdl://abc",
		"/home/me/video.mkv",
		`C:\Videos\a.mkv`,
		`\\server\share\a.mkv`,
	} {
		assert.NoError(t, ValidateLocation(ok), ok)
	}
	for _, bad := range []string{"", "   ", "video.mkv", "c:"} {
		assert.Error(t, ValidateLocation(bad), bad)
	}
}

func TestFilterBindings(t *testing.T) {
	bindings := keybind.DefaultKeymap().Bindings()
	assert.Equal(t, bindings, FilterBindings(bindings, " "))

	vol := FilterBindings(bindings, "VOLUME")
	assert.NotEmpty(t, vol)
	for _, b := range vol {
		assert.Contains(t, b.Command, "volume")
	}

	fs := FilterBindings(bindings, "mouse_btn0_dbl")
	if assert.Len(t, fs, 1) {
		assert.Equal(t, "cycle fullscreen", fs[0].Command)
	}
}

func TestOpenLocationDialogSubmit(t *testing.T) {
	test.NewTempApp(t)
	d := NewOpenLocationDialog("")
	assert.True(t, d.openBtn.Disabled())

	var got string
	var appended bool
	d.OnSubmit = func(loc string, appendOnly bool) { got, appended = loc, appendOnly }

	d.entry.SetText("not a location")
	d.submit()
	assert.Empty(t, got)

	d.entry.SetText("  https://example.com/live.m3u8 ")
	d.appendOnly.SetChecked(true)
	d.submit()
	assert.Equal(t, "https://example.com/live.m3u8", got)
	assert.True(t, appended)
}

func TestPreferencesDialogStagesEngineSettings(t *testing.T) {
	test.NewTempApp(t)
	cfg := backend.DefaultConfig("v0.1.0")
	d := NewPreferencesDialog(cfg)

	var applied *backend.EngineConfig
	d.OnApplyEngine = func(ec backend.EngineConfig) { applied = &ec }

	assert.True(t, d.applyBtn.Disabled())
	d.engineCfg.ExtraOptions = "--hwdec=auto"
	d.updateApply()
	assert.False(t, d.applyBtn.Disabled())
	// the live config is untouched until applied
	assert.Empty(t, cfg.Engine.ExtraOptions)

	d.applyEngine()
	if assert.NotNil(t, applied) {
		assert.Equal(t, "--hwdec=auto", applied.ExtraOptions)
	}
	assert.True(t, d.applyBtn.Disabled())
}

func TestMessageDialogAppend(t *testing.T) {
	test.NewTempApp(t)
	d := NewMessageDialog("Playback error", "first error\n", false)
	d.AppendText("second error\n")
	d.AppendText("\n")
	assert.Equal(t, "first error\nsecond error", d.Text())
}
