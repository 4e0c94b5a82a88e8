package backend

import (
	"testing"

	"github.com/reelplayer/reel/backend/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlaybackManager() (*PlaybackManager, *recordingHandle, *queueScheduler) {
	e, h := newTestEngine()
	state := NewSharedState()
	sched := &queueScheduler{}
	d := NewDispatcher(state, sched, e)
	return NewPlaybackManager(e, state, d), h, sched
}

func TestLoadModes(t *testing.T) {
	pm, h, _ := newTestPlaybackManager()

	require.NoError(t, pm.Load([]string{"/a.mkv", "/b.mkv"}, Replace))
	require.NoError(t, pm.Load([]string{"/c.mkv"}, AppendPlay))
	require.NoError(t, pm.Load([]string{"/d.mkv"}, Append))

	assert.Equal(t, [][]string{
		{"loadfile", "/a.mkv", "replace"},
		{"loadfile", "/b.mkv", "append"},
		{"loadfile", "/c.mkv", "append-play"},
		{"loadfile", "/d.mkv", "append"},
	}, h.recorded())
}

func TestNavigationFailuresAreSilent(t *testing.T) {
	pm, h, _ := newTestPlaybackManager()
	h.failCmds["playlist-next"] = true
	pm.Next()
	pm.Previous()
	assert.Equal(t, [][]string{{"playlist-prev"}}, h.recorded())
}

func TestMoveItems(t *testing.T) {
	pm, h, sched := newTestPlaybackManager()
	pm.dispatcher.Dispatch([]engine.Event{propEvent("playlist", []any{
		map[string]any{"filename": "/a"},
		map[string]any{"filename": "/b"},
		map[string]any{"filename": "/c"},
		map[string]any{"filename": "/d"},
	})})
	sched.flush()

	// move c and d to the top
	require.NoError(t, pm.MoveItems([]int{2, 3}, 0))
	assert.Equal(t, [][]string{
		{"playlist-move", "2", "0"},
		{"playlist-move", "3", "1"},
	}, h.recorded())

	assert.Error(t, pm.MoveItems([]int{7}, 0))
}

func TestPlaybackTransitions(t *testing.T) {
	pm, _, sched := newTestPlaybackManager()

	var events []string
	pm.OnPlaying(func() { events = append(events, "playing") })
	pm.OnPaused(func() { events = append(events, "paused") })
	pm.OnStopped(func() { events = append(events, "stopped") })
	pm.OnVolumeChange(func(v int) { events = append(events, "volume") })
	pm.OnMediaChange(func(PlaybackStatus) { events = append(events, "media") })

	d := pm.dispatcher
	d.Dispatch([]engine.Event{
		{Kind: engine.EventStartFile},
		propEvent("path", "/a.mkv"),
		propEvent("pause", false),
		{Kind: engine.EventFileLoaded},
		propEvent("idle-active", false),
	})
	sched.flush()
	assert.Equal(t, []string{"media", "playing"}, events)

	events = nil
	d.Dispatch([]engine.Event{propEvent("pause", true)})
	sched.flush()
	assert.Equal(t, []string{"paused"}, events)

	events = nil
	d.Dispatch([]engine.Event{propEvent("volume", 55.0)})
	sched.flush()
	assert.Equal(t, []string{"volume"}, events)

	events = nil
	d.Dispatch([]engine.Event{{Kind: engine.EventEndFile, EndFile: &engine.EndFile{Reason: engine.EndReasonEOF}}})
	sched.flush()
	assert.Equal(t, []string{"stopped"}, events)

	pm.DisableCallbacks()
	events = nil
	d.Dispatch([]engine.Event{propEvent("volume", 20.0)})
	sched.flush()
	assert.Empty(t, events)
}

func TestPlayPauseFromIdleStartsPlaylist(t *testing.T) {
	pm, h, sched := newTestPlaybackManager()
	pm.dispatcher.Dispatch([]engine.Event{propEvent("playlist", []any{map[string]any{"filename": "/a"}})})
	sched.flush()

	require.NoError(t, pm.PlayPause())
	assert.Equal(t, [][]string{{"playlist-play-index", "0"}}, h.recorded())
}
