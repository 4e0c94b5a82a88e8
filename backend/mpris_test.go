package backend

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMPRISPlayer struct {
	status  PlaybackStatus
	entry   *PlaylistEntry
	calls   []string
	seekPos float64
	loaded  []string
	volume  int
	loop    bool
}

func (f *fakeMPRISPlayer) Status() PlaybackStatus { return f.status }
func (f *fakeMPRISPlayer) NowPlaying() (PlaylistEntry, bool) {
	if f.entry == nil {
		return PlaylistEntry{}, false
	}
	return *f.entry, true
}
func (f *fakeMPRISPlayer) Load(uris []string, _ LoadMode) error {
	f.loaded = append(f.loaded, uris...)
	return nil
}
func (f *fakeMPRISPlayer) Play() error      { f.calls = append(f.calls, "play"); return nil }
func (f *fakeMPRISPlayer) Pause() error     { f.calls = append(f.calls, "pause"); return nil }
func (f *fakeMPRISPlayer) PlayPause() error { f.calls = append(f.calls, "playpause"); return nil }
func (f *fakeMPRISPlayer) Stop() error      { f.calls = append(f.calls, "stop"); return nil }
func (f *fakeMPRISPlayer) Next()            { f.calls = append(f.calls, "next") }
func (f *fakeMPRISPlayer) Previous()        { f.calls = append(f.calls, "previous") }
func (f *fakeMPRISPlayer) SeekSeconds(s float64) error {
	f.seekPos = s
	return nil
}
func (f *fakeMPRISPlayer) Volume() int                  { return f.volume }
func (f *fakeMPRISPlayer) SetVolume(v int) error        { f.volume = v; return nil }
func (f *fakeMPRISPlayer) SetLoopPlaylist(l bool) error { f.loop = l; return nil }

func TestMPRISPlaybackStatus(t *testing.T) {
	p := &fakeMPRISPlayer{}
	m := newMPRISHandler("Reel", p)

	for _, tt := range []struct {
		st   PlaybackStatus
		want types.PlaybackStatus
	}{
		{PlaybackStatus{Idle: true}, types.PlaybackStatusStopped},
		{PlaybackStatus{Loaded: true, Paused: true}, types.PlaybackStatusPaused},
		{PlaybackStatus{Loaded: true}, types.PlaybackStatusPlaying},
		{PlaybackStatus{Loaded: true, Idle: true}, types.PlaybackStatusStopped},
	} {
		p.status = tt.st
		got, err := m.PlaybackStatus()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestMPRISControls(t *testing.T) {
	p := &fakeMPRISPlayer{volume: 40}
	m := newMPRISHandler("Reel", p)

	require.NoError(t, m.PlayPause())
	require.NoError(t, m.Next())
	require.NoError(t, m.Previous())
	require.NoError(t, m.Stop())
	assert.Equal(t, []string{"playpause", "next", "previous", "stop"}, p.calls)

	p.status.TimePos = 10
	require.NoError(t, m.Seek(secondsToMicroseconds(5)))
	assert.Equal(t, 15.0, p.seekPos)
	require.NoError(t, m.Seek(secondsToMicroseconds(-60)))
	assert.Equal(t, 0.0, p.seekPos)

	vol, _ := m.Volume()
	assert.Equal(t, 0.4, vol)
	require.NoError(t, m.SetVolume(0.75))
	assert.Equal(t, 75, p.volume)

	require.NoError(t, m.OpenUri("https://example.com/a.mp4"))
	assert.Equal(t, []string{"https://example.com/a.mp4"}, p.loaded)

	require.NoError(t, m.SetLoopStatus(types.LoopStatusPlaylist))
	assert.True(t, p.loop)
	assert.Error(t, m.SetLoopStatus(types.LoopStatusTrack))
}

func TestMPRISMetadataAndSetPosition(t *testing.T) {
	entry := PlaylistEntry{ID: uuid.New(), Name: "clip.mkv", URI: "/v/clip.mkv", Current: true}
	p := &fakeMPRISPlayer{entry: &entry, status: PlaybackStatus{Loaded: true, Duration: 90}}
	m := newMPRISHandler("Reel", p)
	m.ArtURLLookup = func() (string, error) { return "file:///cache/frame.png", nil }
	m.updateTrackPath()

	meta, err := m.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "clip.mkv", meta.Title)
	assert.Equal(t, types.Microseconds(90_000_000), meta.Length)
	assert.Equal(t, "file:///cache/frame.png", meta.ArtUrl)
	assert.NotContains(t, string(meta.TrackId), "-")

	require.NoError(t, m.SetPosition(string(meta.TrackId), secondsToMicroseconds(30)))
	assert.Equal(t, 30.0, p.seekPos)

	// positions for another track are ignored
	require.NoError(t, m.SetPosition(noTrackObjectPath, secondsToMicroseconds(5)))
	assert.Equal(t, 30.0, p.seekPos)

	p.entry = nil
	m.updateTrackPath()
	meta, _ = m.Metadata()
	assert.Equal(t, noTrackObjectPath, string(meta.TrackId))
}
